package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/config"
	"github.com/priyanshuchauhan04/academics-analytics/internal/api/handler"
	"github.com/priyanshuchauhan04/academics-analytics/internal/api/middleware"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/metrics"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时登录接口不限流
func Setup(cfg *config.Config, h *handler.Handler, guard *auth.Guard, limiter middleware.RateLimiter, logger *zap.Logger) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	cookieName := ""
	if cfg.Auth.Mode == config.AuthModeSession {
		cookieName = cfg.Auth.Cookie.Name
	}
	authn := middleware.JWTAuth(guard, cookieName, logger)
	student := middleware.RoleAuth(model.RoleStudent)
	teacher := middleware.RoleAuth(model.RoleTeacher)
	jsonLimit := middleware.BodyLimit(cfg.Server.MaxBodyBytes)
	uploadLimit := middleware.BodyLimit(cfg.Upload.MaxBytes)

	api := r.Group("/api")
	{
		// 认证模块（无需认证）
		public := api.Group("/auth", jsonLimit)
		{
			public.POST("/register", h.Auth.Register)
			public.POST("/login",
				middleware.RateLimit(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, logger),
				h.Auth.Login,
			)
		}

		// 需要认证的路由
		authorized := api.Group("", authn)
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 列表按身份自动限定范围，创建仅限教师
			records := authorized.Group("", jsonLimit)
			{
				records.GET("/courses", h.Course.List)
				records.POST("/courses", teacher, h.Course.Create)

				records.GET("/enrollments", h.Enrollment.List)
				records.POST("/enrollments", teacher, h.Enrollment.Create)

				records.GET("/grades", h.Grade.List)
				records.POST("/grades", teacher, h.Grade.Create)

				records.GET("/attendance", h.Attendance.List)
				records.POST("/attendance", teacher, h.Attendance.Create)

				records.GET("/assignments", h.Assignment.List)
				records.POST("/assignments", teacher, h.Assignment.Create)
			}

			// 仪表盘
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/student", student, h.Dashboard.Student)
				dashboard.GET("/teacher", teacher, h.Dashboard.Teacher)
			}

			// 批量导入
			upload := authorized.Group("/upload", teacher, uploadLimit)
			{
				upload.POST("/enrollments", h.Upload.Enrollments)
				upload.POST("/grades", h.Upload.Grades)
			}

			authorized.GET("/student/transcript", student, h.Transcript.Download)
			authorized.GET("/export/grades", teacher, h.Export.ExportGrades)
		}
	}

	return r, nil
}
