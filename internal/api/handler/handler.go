package handler

import (
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Enrollment *EnrollmentHandler
	Grade      *GradeHandler
	Attendance *AttendanceHandler
	Assignment *AssignmentHandler
	Dashboard  *DashboardHandler
	Upload     *UploadHandler
	Transcript *TranscriptHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
// cookie 为 nil 时不下发会话 Cookie（token 模式）
func NewHandler(svc *service.Service, cookie *CookieOptions, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, cookie, logger),
		Course:     NewCourseHandler(svc.Course, logger),
		Enrollment: NewEnrollmentHandler(svc.Enrollment, logger),
		Grade:      NewGradeHandler(svc.Grade, logger),
		Attendance: NewAttendanceHandler(svc.Attendance, logger),
		Assignment: NewAssignmentHandler(svc.Assignment, logger),
		Dashboard:  NewDashboardHandler(svc.Dashboard, logger),
		Upload:     NewUploadHandler(svc.Upload, logger),
		Transcript: NewTranscriptHandler(svc.Transcript, logger),
		Export:     NewExportHandler(svc.Export, logger),
	}
}
