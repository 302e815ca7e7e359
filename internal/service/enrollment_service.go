package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	List(ctx context.Context, id *auth.Identity) ([]model.Enrollment, error)
	Create(ctx context.Context, id *auth.Identity, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	scope  *scope
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, scope: newScope(repo), logger: logger}
}

func (s *enrollmentService) List(ctx context.Context, id *auth.Identity) ([]model.Enrollment, error) {
	list, err := s.scope.enrollments(ctx, id)
	if err != nil {
		s.logger.Error("查询选课列表失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return nonNil(list), nil
}

// Create 教师为自己课程下的学生选课
// 重复选课由唯一索引拒绝，并发请求中只有一个成功
func (s *enrollmentService) Create(ctx context.Context, id *auth.Identity, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	course, err := s.scope.ownedCourse(ctx, id, req.CourseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.scope.student(ctx, req.StudentID); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: req.StudentID,
		CourseID:  course.ID,
		Semester:  req.Semester,
		Year:      req.Year,
		Status:    model.EnrollmentEnrolled,
	}
	if enrollment.Semester == "" {
		enrollment.Semester = course.Semester
	}
	if enrollment.Year == 0 {
		enrollment.Year = course.Year
	}

	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrEnrollmentExists
		}
		s.logger.Error("创建选课失败", zap.Error(err))
		return nil, err
	}
	return enrollment, nil
}
