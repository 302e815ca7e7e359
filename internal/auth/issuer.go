// Package auth 身份认证：签发/校验访问凭证，并做角色授权。
//
// 两种凭证实现同一个 Issuer 接口：
//   - TokenIssuer：无状态 HS256 JWT（auth.mode = token，默认）
//   - SessionIssuer：服务端 Redis 会话（auth.mode = session）
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrExpired 凭证已过期
	ErrExpired = errors.New("凭证已过期")
	// ErrMalformed 凭证签名或结构无效，或会话不存在
	ErrMalformed = errors.New("凭证无效")
	// ErrUnknownUser 凭证指向的用户已不存在
	ErrUnknownUser = errors.New("用户不存在")
	// ErrUnauthenticated 未认证，包装上面三者之一
	ErrUnauthenticated = errors.New("未认证")
	// ErrForbidden 角色不匹配
	ErrForbidden = errors.New("无权限访问")
)

// 凭证类型
const (
	KindBearer  = "bearer"
	KindSession = "session"
)

// DefaultTTL 凭证默认有效期
const DefaultTTL = 24 * time.Hour

// Assertion 签发给客户端的凭证
type Assertion struct {
	Value     string
	Kind      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity 校验通过后的调用方身份
type Identity struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// Issuer 凭证签发与校验
type Issuer interface {
	Issue(ctx context.Context, userID, role string) (*Assertion, error)
	// Validate 返回 ErrExpired 或 ErrMalformed
	Validate(ctx context.Context, raw string) (*Identity, error)
	Revoke(ctx context.Context, raw string) error
	Kind() string
}
