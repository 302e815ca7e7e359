package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/priyanshuchauhan04/academics-analytics/internal/api/middleware"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// MustGetIdentity 从 Gin 上下文中提取调用方身份。
// 中间件未注入时写入 401，调用方应在 ok=false 时直接 return。
func MustGetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(middleware.ContextIdentity)
	if !exists {
		response.Unauthorized(c, CodeUnauthorized, "未认证")
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	if !ok || id == nil || id.UserID == "" {
		response.Unauthorized(c, CodeUnauthorized, "未认证")
		return nil, false
	}
	return id, true
}

// assertionOf 当前请求携带的原始凭证
func assertionOf(c *gin.Context) string {
	return c.GetString(middleware.ContextAssertion)
}
