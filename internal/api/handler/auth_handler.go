package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/config"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// CookieOptions 会话 Cookie 参数
type CookieOptions struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// NewCookieOptions 由配置构造 Cookie 参数，非 session 模式返回 nil
func NewCookieOptions(cfg *config.AuthConfig) *CookieOptions {
	if cfg.Mode != config.AuthModeSession {
		return nil
	}
	return &CookieOptions{
		Name:     cfg.Cookie.Name,
		Domain:   cfg.Cookie.Domain,
		Secure:   cfg.Cookie.Secure,
		SameSite: parseSameSite(cfg.Cookie.SameSite),
		MaxAge:   cfg.AssertionTTL,
	}
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cookie  *CookieOptions
	logger  *zap.Logger
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cookie *CookieOptions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: cookie, logger: logger}
}

// Register 注册并直接登录
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken)
	response.OK(c, result)
}

// Login 用户登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.setSessionCookie(c, result.AccessToken)
	response.OK(c, result)
}

// Logout 撤销当前凭证并清除 Cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), id, assertionOf(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.clearSessionCookie(c)
	response.Message(c, "已退出登录")
}

// Me 当前用户信息
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string) {
	if h.cookie == nil {
		return
	}
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, value, int(h.cookie.MaxAge.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	if h.cookie == nil {
		return
	}
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}
