package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// ── 选课 ──

// EnrollmentHandler 选课记录 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
	logger        *zap.Logger
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc, logger: logger}
}

// List GET /api/enrollments
func (h *EnrollmentHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	list, err := h.enrollmentSvc.List(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Create POST /api/enrollments
// 同一学生对同一课程只能有一条有效选课记录
func (h *EnrollmentHandler) Create(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	e, err := h.enrollmentSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, e)
}

// ── 成绩 ──

// GradeHandler 成绩 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
	logger   *zap.Logger
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService, logger *zap.Logger) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc, logger: logger}
}

// List GET /api/grades
func (h *GradeHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	list, err := h.gradeSvc.List(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Create POST /api/grades
func (h *GradeHandler) Create(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	g, err := h.gradeSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, g)
}

// ── 考勤 ──

// AttendanceHandler 考勤 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	logger        *zap.Logger
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, logger: logger}
}

// List GET /api/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	list, err := h.attendanceSvc.List(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Create POST /api/attendance
func (h *AttendanceHandler) Create(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	a, err := h.attendanceSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, a)
}

// ── 作业 ──

// AssignmentHandler 作业 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	logger        *zap.Logger
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, logger: logger}
}

// List GET /api/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	list, err := h.assignmentSvc.List(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, list)
}

// Create POST /api/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, a)
}
