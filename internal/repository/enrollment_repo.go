package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	// Create 插入选课记录；有效选课重复时返回 pkgerrors.ErrDuplicateKey（由唯一索引保证）
	Create(ctx context.Context, enrollment *model.Enrollment) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	ListByCourses(ctx context.Context, courseIDs []string) ([]model.Enrollment, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return translateErr(r.db.WithContext(ctx).Create(enrollment).Error)
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var list []model.Enrollment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("enrolled_at ASC").
		Find(&list).Error
	return list, err
}

func (r *enrollmentRepo) ListByCourses(ctx context.Context, courseIDs []string) ([]model.Enrollment, error) {
	list := make([]model.Enrollment, 0)
	if len(courseIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("enrolled_at ASC").
		Find(&list).Error
	return list, err
}
