package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mautops/headcount-gin/internal/api"
	"github.com/mautops/headcount-gin/internal/workflow"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordWorkflowError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	api.HandleWorkflowError(c, err)
	return w
}

// TestHandleWorkflowError 测试工作流错误到 HTTP 状态码的映射
func TestHandleWorkflowError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"校验错误映射 400", &workflow.ValidationError{Message: "reason is required"}, http.StatusBadRequest},
		{"授权错误映射 403", &workflow.AuthorizationError{ActorID: "user-001", ScopeID: "org-001"}, http.StatusForbidden},
		{"未找到映射 404", &workflow.NotFoundError{Resource: "request", ID: "req-001"}, http.StatusNotFound},
		{"状态冲突映射 409", &workflow.InvalidStateError{RequestID: "req-001", Status: "approved"}, http.StatusConflict},
		{"依赖错误映射 500", &workflow.DependencyError{Op: "create request", Err: errors.New("db down")}, http.StatusInternalServerError},
		{"未知错误映射 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := recordWorkflowError(tc.err)
			assert.Equal(t, tc.wantStatus, w.Code)

			var body api.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantStatus, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

// TestResponseEnvelope 测试统一响应格式
func TestResponseEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	api.Success(c, map[string]string{"id": "req-001"})

	assert.Equal(t, http.StatusOK, w.Code)

	var body api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "success", body.Message)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	api.Created(c, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}
