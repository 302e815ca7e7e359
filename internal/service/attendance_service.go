package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	List(ctx context.Context, id *auth.Identity) ([]model.Attendance, error)
	Create(ctx context.Context, id *auth.Identity, req *dto.CreateAttendanceRequest) (*model.Attendance, error)
}

type attendanceService struct {
	repo   *repository.Repository
	scope  *scope
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, scope: newScope(repo), logger: logger}
}

func (s *attendanceService) List(ctx context.Context, id *auth.Identity) ([]model.Attendance, error) {
	list, err := s.scope.attendance(ctx, id)
	if err != nil {
		s.logger.Error("查询考勤列表失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return nonNil(list), nil
}

func (s *attendanceService) Create(ctx context.Context, id *auth.Identity, req *dto.CreateAttendanceRequest) (*model.Attendance, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.scope.ownedCourse(ctx, id, req.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.scope.student(ctx, req.StudentID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.AttendancePresent
	}
	recordedBy := id.UserID

	record := &model.Attendance{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		Date:       date,
		Status:     status,
		RecordedBy: &recordedBy,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrAttendanceExists
		}
		s.logger.Error("记录考勤失败", zap.Error(err))
		return nil, err
	}
	return record, nil
}
