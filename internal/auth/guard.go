package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// UserLookup 按 ID 查询用户，由 repository.UserRepository 实现
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Guard 访问控制：先认证，再授权
type Guard struct {
	issuer Issuer
	users  UserLookup
}

// NewGuard 创建 Guard
func NewGuard(issuer Issuer, users UserLookup) *Guard {
	return &Guard{issuer: issuer, users: users}
}

// Authenticate 校验凭证并确认用户仍然存在
// 认证失败时返回包装了具体原因的 ErrUnauthenticated；查询用户出错时原样返回
func (g *Guard) Authenticate(ctx context.Context, raw string) (*Identity, error) {
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	id, err := g.issuer.Validate(ctx, raw)
	if err != nil {
		if errors.Is(err, ErrExpired) || errors.Is(err, ErrMalformed) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, err
	}

	user, err := g.users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrUnknownUser)
		}
		return nil, err
	}

	// 角色以数据库为准
	id.Role = user.Role
	return id, nil
}

// Authorize 角色必须完全一致，不存在角色继承
func Authorize(id *Identity, role string) error {
	if id == nil {
		return ErrUnauthenticated
	}
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}
