package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/takeout-gin/internal/service"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			var apiErr *APIError
			if errors.As(err, &apiErr) {
				Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			} else {
				Error(c, http.StatusInternalServerError, "internal server error", err.Error())
			}
		}
	}
}

// WrapError 包装错误
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}

// serviceError 将服务层错误类别映射为 HTTP 响应
// 约定: 缺理由 400, 不存在 404, 重复提交/已被处理 409,
// 状态机不允许 422, 存储失败 500
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingReason):
		ErrorWithKind(c, http.StatusBadRequest, "reason is required", service.ErrorKind(err), err.Error())
	case errors.Is(err, service.ErrNotFound):
		ErrorWithKind(c, http.StatusNotFound, "resource not found", service.ErrorKind(err), err.Error())
	case errors.Is(err, service.ErrDuplicateSubmission):
		ErrorWithKind(c, http.StatusConflict, "duplicate submission", "duplicate_submission", err.Error())
	case errors.Is(err, service.ErrAlreadyResolved):
		ErrorWithKind(c, http.StatusConflict, "already resolved by another actor", service.ErrorKind(err), err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		ErrorWithKind(c, http.StatusUnprocessableEntity, "transition not allowed", service.ErrorKind(err), err.Error())
	case errors.Is(err, service.ErrPersistence):
		ErrorWithKind(c, http.StatusInternalServerError, "storage failure", service.ErrorKind(err), err.Error())
	default:
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
	}
}
