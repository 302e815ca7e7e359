package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/config"
	"github.com/priyanshuchauhan04/academics-analytics/internal/api/handler"
	"github.com/priyanshuchauhan04/academics-analytics/internal/api/middleware"
	"github.com/priyanshuchauhan04/academics-analytics/internal/api/router"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/database"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/jwt"
	applogger "github.com/priyanshuchauhan04/academics-analytics/pkg/logger"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/observability"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/password"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/redis"
)

// version 构建时通过 -ldflags 注入
var version = "dev"

func main() {
	configPath := flag.String("config", "", "配置文件路径，默认查找 ./config/config.yaml")
	flag.Parse()

	// 0. 加载 .env（不存在时忽略）
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("应用启动中...",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("auth_mode", cfg.Auth.Mode),
		zap.String("grading_scale", cfg.Grading.Scale),
	)

	// 3. 错误上报
	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, version)
	if err != nil {
		logger.Warn("Sentry 初始化失败，错误上报不可用", zap.Error(err))
	}
	defer flush()

	// 4. 连接数据库并执行迁移
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 5. 连接 Redis：session 模式必需，token 模式下仅用于登录限流
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		if cfg.Auth.Mode == config.AuthModeSession {
			logger.Fatal("session 模式需要 Redis", zap.Error(err))
		}
		logger.Warn("Redis 连接失败，登录限流将不可用", zap.Error(err))
		rdb = nil
	}

	// 6. 凭证签发器
	issuer := newIssuer(cfg, rdb)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	guard := auth.NewGuard(issuer, repo.User)
	svc := service.NewService(cfg, repo, issuer, password.NewHasher(cfg.Auth.BcryptCost), logger)
	h := handler.NewHandler(svc, handler.NewCookieOptions(&cfg.Auth), logger)

	// 8. 初始化路由
	gin.SetMode(gin.ReleaseMode)
	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}
	engine, err := router.Setup(cfg, h, guard, limiter, logger)
	if err != nil {
		logger.Fatal("初始化路由失败", zap.Error(err))
	}

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// newIssuer 按 auth.mode 选择凭证实现
func newIssuer(cfg *config.Config, rdb *redis.Client) auth.Issuer {
	if cfg.Auth.Mode == config.AuthModeSession {
		return auth.NewSessionIssuer(rdb, cfg.Auth.AssertionTTL)
	}
	return auth.NewTokenIssuer(jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AssertionTTL))
}
