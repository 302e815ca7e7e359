package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// GetByTeacherAndCode 在某教师名下按课程代码查询（批量导入用）
	GetByTeacherAndCode(ctx context.Context, teacherID, code string) (*model.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Course, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return translateErr(r.db.WithContext(ctx).Create(course).Error)
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByTeacherAndCode(ctx context.Context, teacherID, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND code = ?", teacherID, code).
		Order("year DESC, created_at DESC").
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	courses := make([]model.Course, 0, len(ids))
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}
