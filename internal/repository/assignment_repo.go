package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	ListByCourses(ctx context.Context, courseIDs []string) ([]model.Assignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return translateErr(r.db.WithContext(ctx).Create(assignment).Error)
}

func (r *assignmentRepo) ListByCourses(ctx context.Context, courseIDs []string) ([]model.Assignment, error) {
	list := make([]model.Assignment, 0)
	if len(courseIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("due_date ASC").
		Find(&list).Error
	return list, err
}
