package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
)

// TranscriptHandler 成绩单 HTTP 处理器
type TranscriptHandler struct {
	transcriptSvc service.TranscriptService
	logger        *zap.Logger
}

// NewTranscriptHandler 创建 TranscriptHandler
func NewTranscriptHandler(transcriptSvc service.TranscriptService, logger *zap.Logger) *TranscriptHandler {
	return &TranscriptHandler{transcriptSvc: transcriptSvc, logger: logger}
}

// Download 下载本人 PDF 成绩单
// GET /api/student/transcript
func (h *TranscriptHandler) Download(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	pdf, filename, err := h.transcriptSvc.Generate(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	sendFile(c, mimePDF, filename, pdf)
}
