package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/api/middleware"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// UploadHandler 批量导入 HTTP 处理器
type UploadHandler struct {
	uploadSvc service.UploadService
	logger    *zap.Logger
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, logger: logger}
}

type uploadFunc func(ctx context.Context, id *auth.Identity, filename string, r io.Reader) (*dto.UploadResponse, error)

// Enrollments 批量导入选课（.csv / .xlsx）
// POST /api/upload/enrollments
func (h *UploadHandler) Enrollments(c *gin.Context) {
	h.handle(c, h.uploadSvc.UploadEnrollments)
}

// Grades 批量导入成绩（.json / .csv）
// POST /api/upload/grades
func (h *UploadHandler) Grades(c *gin.Context) {
	h.handle(c, h.uploadSvc.UploadGrades)
}

func (h *UploadHandler) handle(c *gin.Context, fn uploadFunc) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "上传文件过大")
			return
		}
		response.BadRequest(c, CodeInvalidParam, "缺少上传文件 file")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	result, err := fn(c.Request.Context(), id, fh.Filename, f)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response.OK(c, result)
}
