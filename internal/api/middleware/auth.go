package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/observability"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// 注入 gin.Context 的键
const (
	ContextUserID    = "user_id"
	ContextRole      = "role"
	ContextIdentity  = "identity"
	ContextAssertion = "assertion"
)

// JWTAuth 认证中间件
// 依次从 Authorization: Bearer <value> 和会话 Cookie（cookieName 非空时）读取凭证，
// 交由 Guard 校验；任何失败都返回 401
func JWTAuth(guard *auth.Guard, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := extractAssertion(c, cookieName)
		if !ok {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}
		if raw == "" {
			response.Unauthorized(c, 10002, "缺少认证凭证")
			c.Abort()
			return
		}

		id, err := guard.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				response.Unauthorized(c, 10002, unauthenticatedMessage(err))
				c.Abort()
				return
			}
			logger.Error("校验凭证失败", zap.Error(err))
			observability.CaptureErr(err)
			response.InternalError(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextRole, id.Role)
		c.Set(ContextIdentity, id)
		c.Set(ContextAssertion, raw)

		c.Next()
	}
}

// RoleAuth 角色权限中间件，必须挂在 JWTAuth 之后
// 角色需与 role 完全一致
func RoleAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextIdentity)
		id, _ := v.(*auth.Identity)
		if !exists || id == nil {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		if err := auth.Authorize(id, role); err != nil {
			response.Forbidden(c, 10003, "无权限访问")
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractAssertion 返回 ok=false 表示 Authorization 头存在但格式错误
func extractAssertion(c *gin.Context, cookieName string) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}

	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v, true
		}
	}
	return "", true
}

func unauthenticatedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpired):
		return "凭证已过期"
	case errors.Is(err, auth.ErrUnknownUser):
		return "用户不存在"
	case errors.Is(err, auth.ErrMalformed):
		return "凭证无效"
	default:
		return "未认证"
	}
}
