package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	Create(ctx context.Context, grade *model.Grade) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Grade, error)
	ListByCourses(ctx context.Context, courseIDs []string) ([]model.Grade, error)
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) Create(ctx context.Context, grade *model.Grade) error {
	return translateErr(r.db.WithContext(ctx).Create(grade).Error)
}

func (r *gradeRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Grade, error) {
	var list []model.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("graded_at ASC").
		Find(&list).Error
	return list, err
}

func (r *gradeRepo) ListByCourses(ctx context.Context, courseIDs []string) ([]model.Grade, error) {
	list := make([]model.Grade, 0)
	if len(courseIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("graded_at ASC").
		Find(&list).Error
	return list, err
}
