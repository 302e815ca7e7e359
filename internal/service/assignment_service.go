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

// AssignmentService 作业业务接口
type AssignmentService interface {
	List(ctx context.Context, id *auth.Identity) ([]model.Assignment, error)
	Create(ctx context.Context, id *auth.Identity, req *dto.CreateAssignmentRequest) (*model.Assignment, error)
}

type assignmentService struct {
	repo   *repository.Repository
	scope  *scope
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, scope: newScope(repo), logger: logger}
}

func (s *assignmentService) List(ctx context.Context, id *auth.Identity) ([]model.Assignment, error) {
	list, err := s.scope.assignments(ctx, id)
	if err != nil {
		s.logger.Error("查询作业列表失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	return nonNil(list), nil
}

func (s *assignmentService) Create(ctx context.Context, id *auth.Identity, req *dto.CreateAssignmentRequest) (*model.Assignment, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}
	if _, err := s.scope.ownedCourse(ctx, id, req.CourseID); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		CourseID:    req.CourseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxMarks:    req.MaxMarks,
		Weightage:   req.Weightage,
		CreatedBy:   id.UserID,
	}
	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建作业失败", zap.Error(err))
		return nil, err
	}
	return assignment, nil
}
