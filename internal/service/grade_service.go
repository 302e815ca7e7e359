package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
)

// GradeService 成绩业务接口
type GradeService interface {
	List(ctx context.Context, id *auth.Identity) ([]model.Grade, error)
	Create(ctx context.Context, id *auth.Identity, req *dto.CreateGradeRequest) (*model.Grade, error)
}

type gradeService struct {
	repo   *repository.Repository
	scope  *scope
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, scope: newScope(repo), logger: logger}
}

func (s *gradeService) List(ctx context.Context, id *auth.Identity) ([]model.Grade, error) {
	list, err := s.scope.grades(ctx, id)
	if err != nil {
		s.logger.Error("查询成绩列表失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return nonNil(list), nil
}

func (s *gradeService) Create(ctx context.Context, id *auth.Identity, req *dto.CreateGradeRequest) (*model.Grade, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	grade := &model.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Component: strings.TrimSpace(req.Component),
		Marks:     req.Marks,
		MaxMarks:  req.MaxMarks,
		Weightage: req.Weightage,
	}
	if !grade.InRange() {
		return nil, ErrInvalidRange
	}

	if _, err := s.scope.ownedCourse(ctx, id, req.CourseID); err != nil {
		return nil, err
	}
	if _, err := s.scope.student(ctx, req.StudentID); err != nil {
		return nil, err
	}

	if err := s.repo.Grade.Create(ctx, grade); err != nil {
		s.logger.Error("录入成绩失败", zap.Error(err))
		return nil, err
	}
	return grade, nil
}
