package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	// Create 同一学生同一课程同一天重复时返回 pkgerrors.ErrDuplicateKey
	Create(ctx context.Context, record *model.Attendance) error
	ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error)
	ListByCourses(ctx context.Context, courseIDs []string) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.Attendance) error {
	return translateErr(r.db.WithContext(ctx).Create(record).Error)
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date ASC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) ListByCourses(ctx context.Context, courseIDs []string) ([]model.Attendance, error) {
	list := make([]model.Attendance, 0)
	if len(courseIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("date ASC").
		Find(&list).Error
	return list, err
}
