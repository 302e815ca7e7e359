package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// DashboardHandler 仪表盘 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
	logger       *zap.Logger
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, logger: logger}
}

// Student 学生仪表盘：课程、成绩、考勤、GPA
// GET /api/dashboard/student
func (h *DashboardHandler) Student(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.Student(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, result)
}

// Teacher 教师仪表盘：所授课程与学生统计
// GET /api/dashboard/teacher
func (h *DashboardHandler) Teacher(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.Teacher(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	response.OK(c, result)
}
