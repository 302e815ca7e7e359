package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/api/middleware"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/service"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/observability"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/response"
)

// 业务错误码
const (
	CodeInvalidParam   = 10001
	CodeUnauthorized   = 10002
	CodeForbidden      = 10003
	CodeBodyTooLarge   = 10005
	CodeInvalidRange   = 10006
	CodeInvalidUpload  = 10007
	CodeBadCredentials = 11001
	CodeEmailExists    = 12001
	CodeEnrollExists   = 12002
	CodeAttendExists   = 12003
	CodeUserNotFound   = 13001
	CodeCourseNotFound = 13002
	CodeStudentMissing = 13003
)

type errorMapping struct {
	target error
	status int
	code   int
}

// errorTable 按顺序匹配，第一个命中的生效
var errorTable = []errorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, CodeBadCredentials},
	{auth.ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthorized},
	{auth.ErrForbidden, http.StatusForbidden, CodeForbidden},
	{service.ErrCourseNotOwned, http.StatusForbidden, CodeForbidden},
	{service.ErrEmailExists, http.StatusBadRequest, CodeEmailExists},
	{service.ErrPasswordTooLong, http.StatusBadRequest, CodeInvalidParam},
	{service.ErrEnrollmentExists, http.StatusBadRequest, CodeEnrollExists},
	{service.ErrAttendanceExists, http.StatusBadRequest, CodeAttendExists},
	{service.ErrInvalidRange, http.StatusBadRequest, CodeInvalidRange},
	{service.ErrInvalidDate, http.StatusBadRequest, CodeInvalidParam},
	{service.ErrUnsupportedFile, http.StatusBadRequest, CodeInvalidUpload},
	{service.ErrEmptyUpload, http.StatusBadRequest, CodeInvalidUpload},
	{service.ErrUploadTooManyRows, http.StatusBadRequest, CodeInvalidUpload},
	{service.ErrUploadBadHeader, http.StatusBadRequest, CodeInvalidUpload},
	{service.ErrUploadMalformed, http.StatusBadRequest, CodeInvalidUpload},
	{service.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
	{service.ErrCourseNotFound, http.StatusNotFound, CodeCourseNotFound},
	{service.ErrStudentNotFound, http.StatusNotFound, CodeStudentMissing},
}

// writeError 将业务错误映射为 HTTP 响应，未识别的错误记录日志并上报后返回 500
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			response.Error(c, m.status, m.code, m.target.Error())
			return
		}
	}

	logger.Error("请求处理失败",
		zap.String("path", c.FullPath()),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	observability.CaptureErr(err)
	_ = c.Error(err)
	response.InternalError(c)
}

// writeBindError 参数绑定失败，校验错误逐字段展开到 details
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, describeField(fe))
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, CodeInvalidParam, "参数校验失败", strings.Join(fields, "; "))
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, CodeInvalidParam, "参数校验失败", err.Error())
}

func describeField(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
}
