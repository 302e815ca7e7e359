package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context, id *auth.Identity) ([]model.Course, error)
	// Create 授课教师固定为调用方
	Create(ctx context.Context, id *auth.Identity, req *dto.CreateCourseRequest) (*model.Course, error)
}

type courseService struct {
	repo   *repository.Repository
	scope  *scope
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, scope: newScope(repo), logger: logger}
}

func (s *courseService) List(ctx context.Context, id *auth.Identity) ([]model.Course, error) {
	courses, err := s.scope.courses(ctx, id)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return nonNil(courses), nil
}

func (s *courseService) Create(ctx context.Context, id *auth.Identity, req *dto.CreateCourseRequest) (*model.Course, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	teacher, err := s.repo.User.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !teacher.IsTeacher() {
		return nil, auth.ErrForbidden
	}

	schedule, err := json.Marshal(model.CourseSchedule{
		Days:     nonNil(req.Schedule.Days),
		Time:     req.Schedule.Time,
		Location: req.Schedule.Location,
	})
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Credits:     req.Credits,
		TeacherID:   teacher.ID,
		Schedule:    datatypes.JSON(schedule),
		Semester:    req.Semester,
		Year:        req.Year,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程已创建",
		zap.String("course_id", course.ID),
		zap.String("code", course.Code),
		zap.String("teacher_id", course.TeacherID),
	)
	return course, nil
}
