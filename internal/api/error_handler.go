package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mautops/headcount-gin/internal/workflow"
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

// HandleWorkflowError 将工作流错误映射为 HTTP 响应
// 校验错误 400、授权错误 403、未找到 404、状态冲突 409,其余 500
func HandleWorkflowError(c *gin.Context, err error) {
	var (
		validationErr   *workflow.ValidationError
		notFoundErr     *workflow.NotFoundError
		authzErr        *workflow.AuthorizationError
		invalidStateErr *workflow.InvalidStateError
		dependencyErr   *workflow.DependencyError
	)

	switch {
	case errors.As(err, &validationErr):
		Error(c, http.StatusBadRequest, "invalid request", validationErr.Message)
	case errors.As(err, &authzErr):
		Error(c, http.StatusForbidden, "not authorized to resolve this request", authzErr.Error())
	case errors.As(err, &notFoundErr):
		Error(c, http.StatusNotFound, notFoundErr.Resource+" not found", notFoundErr.Error())
	case errors.As(err, &invalidStateErr):
		Error(c, http.StatusConflict, "request already resolved", invalidStateErr.Error())
	case errors.As(err, &dependencyErr):
		Error(c, http.StatusInternalServerError, "dependency failure", dependencyErr.Error())
	default:
		Error(c, http.StatusInternalServerError, "internal server error", err.Error())
	}
}
