package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/metrics"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/password"
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout 撤销凭证；token 模式下凭证在过期前仍然有效
	Logout(ctx context.Context, id *auth.Identity, raw string) error
	Me(ctx context.Context, id *auth.Identity) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	issuer auth.Issuer
	hasher *password.Hasher
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	issuer auth.Issuer,
	hasher *password.Hasher,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		issuer: issuer,
		hasher: hasher,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, ErrPasswordTooLong
		}
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        normalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PasswordHash: hash,
		StudentID:    optional(req.StudentID),
		EmployeeID:   optional(req.EmployeeID),
	}

	// 邮箱唯一性由数据库唯一索引保证
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.repo.AuditLog, s.logger, model.AuditRegister, user.ID, map[string]interface{}{"role": user.Role})
	s.logger.Info("用户注册成功", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LoginFailed()
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		metrics.LoginFailed()
		return nil, ErrInvalidCredentials
	}

	// 3. 签发凭证
	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginSucceeded()
	recordAudit(ctx, s.repo.AuditLog, s.logger, model.AuditLogin, user.ID, map[string]interface{}{"kind": s.issuer.Kind()})
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, id *auth.Identity, raw string) error {
	if err := s.issuer.Revoke(ctx, raw); err != nil {
		s.logger.Error("撤销凭证失败", zap.String("user_id", id.UserID), zap.Error(err))
		return err
	}
	recordAudit(ctx, s.repo.AuditLog, s.logger, model.AuditLogout, id.UserID, nil)
	return nil
}

func (s *authService) Me(ctx context.Context, id *auth.Identity) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) issue(ctx context.Context, user *model.User) (*dto.TokenResponse, error) {
	a, err := s.issuer.Issue(ctx, user.ID, user.Role)
	if err != nil {
		s.logger.Error("签发凭证失败", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: a.Value,
		TokenType:   a.Kind,
		ExpiresAt:   a.ExpiresAt.UTC().Format(time.RFC3339),
		User:        dto.NewUserResponse(user),
	}, nil
}

// ── 辅助函数 ──

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
