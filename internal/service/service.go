package service

import (
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/config"
	"github.com/priyanshuchauhan04/academics-analytics/internal/analytics"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/password"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Course     CourseService
	Enrollment EnrollmentService
	Grade      GradeService
	Attendance AttendanceService
	Assignment AssignmentService
	Dashboard  DashboardService
	Upload     UploadService
	Transcript TranscriptService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	issuer auth.Issuer,
	hasher *password.Hasher,
	logger *zap.Logger,
) *Service {
	opts := gradingOptions(&cfg.Grading)
	return &Service{
		Auth:       NewAuthService(repo, issuer, hasher, logger),
		Course:     NewCourseService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Grade:      NewGradeService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Assignment: NewAssignmentService(repo, logger),
		Dashboard:  NewDashboardService(repo, opts, logger),
		Upload:     NewUploadService(repo, cfg.Upload.MaxRows, logger),
		Transcript: NewTranscriptService(repo, opts, logger),
		Export:     NewExportService(repo, logger),
	}
}

// gradingOptions 将配置转换为聚合选项
func gradingOptions(cfg *config.GradingConfig) analytics.Options {
	scale := analytics.ScaleLinear
	if cfg.Scale == config.GradingScaleLetter {
		scale = analytics.ScaleLetter
	}
	return analytics.Options{Scale: scale, Weighted: cfg.Weighted}
}
