package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
	logger    *zap.Logger
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, logger: logger}
}

// List 当前用户可见的课程
// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response.OK(c, courses)
}

// Create 教师创建课程
// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response.OK(c, course)
}
