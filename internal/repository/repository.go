package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Course     CourseRepository
	Enrollment EnrollmentRepository
	Grade      GradeRepository
	Attendance AttendanceRepository
	Assignment AssignmentRepository
	AuditLog   AuditLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Course:     NewCourseRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		Grade:      NewGradeRepo(db),
		Attendance: NewAttendanceRepo(db),
		Assignment: NewAssignmentRepo(db),
		AuditLog:   NewAuditLogRepo(db),
	}
}

// translateErr 将唯一约束冲突统一转换为 pkgerrors.ErrDuplicateKey
// 依赖 gorm.Config.TranslateError = true
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrDuplicateKey, err)
	}
	return err
}
