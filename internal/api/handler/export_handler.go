package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ExportHandler 成绩导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	logger    *zap.Logger
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, logger: logger}
}

// ExportGrades 导出课程成绩表
// GET /api/export/grades?course_id=xxx
func (h *ExportHandler) ExportGrades(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ExportGradesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportGrades(c.Request.Context(), id, req.CourseID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	sendFile(c, mimeXLSX, filename, buf.Bytes())
}

// sendFile 以附件形式返回文件，文件名按 RFC 5987 编码
func sendFile(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}
