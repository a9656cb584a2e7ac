package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mautops/headcount-gin/internal/service"
	"github.com/mautops/headcount-gin/internal/utils"
)

// RequestController 变更请求控制器
type RequestController struct {
	requestService service.RequestService
}

// NewRequestController 创建变更请求控制器
func NewRequestController(requestService service.RequestService) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

// validateRequestID 验证请求 ID 并返回错误响应（如果无效）
func (c *RequestController) validateRequestID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateRequestID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request ID", err.Error())
		return false
	}
	return true
}

// Create 创建变更请求
// @Summary      创建编制变更请求
// @Description  为指定岗位提交编制变更请求,进入待审批状态
// @Tags         变更请求
// @Accept       json
// @Produce      json
// @Param        request body service.CreateRequestRequest true "变更请求信息"
// @Success      201  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests [post]
// @Security     BearerAuth
func (c *RequestController) Create(ctx *gin.Context) {
	var req service.CreateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requestService.Create(ctx, &req)
	if err != nil {
		HandleWorkflowError(ctx, err)
		return
	}

	Created(ctx, request)
}

// Get 获取变更请求详情
// @Summary      获取变更请求详情
// @Description  根据 ID 获取变更请求详情
// @Tags         变更请求
// @Accept       json
// @Produce      json
// @Param        id path string true "请求 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests/{id} [get]
// @Security     BearerAuth
func (c *RequestController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	request, err := c.requestService.Get(id)
	if err != nil {
		HandleWorkflowError(ctx, err)
		return
	}

	Success(ctx, request)
}

// Approve 批准变更请求
// @Summary      批准变更请求
// @Description  审批人批准变更请求,岗位编制随之更新
// @Tags         变更请求
// @Accept       json
// @Produce      json
// @Param        id path string true "请求 ID"
// @Param        request body service.ResolveRequestRequest true "裁决信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests/{id}/approve [post]
// @Security     BearerAuth
func (c *RequestController) Approve(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	var req service.ResolveRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requestService.Approve(ctx, id, &req)
	if err != nil {
		HandleWorkflowError(ctx, err)
		return
	}

	Success(ctx, request)
}

// Reject 拒绝变更请求
// @Summary      拒绝变更请求
// @Description  审批人拒绝变更请求,岗位编制保持不变
// @Tags         变更请求
// @Accept       json
// @Produce      json
// @Param        id path string true "请求 ID"
// @Param        request body service.ResolveRequestRequest true "裁决信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests/{id}/reject [post]
// @Security     BearerAuth
func (c *RequestController) Reject(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	var req service.ResolveRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	request, err := c.requestService.Reject(ctx, id, &req)
	if err != nil {
		HandleWorkflowError(ctx, err)
		return
	}

	Success(ctx, request)
}
