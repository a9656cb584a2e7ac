package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mautops/headcount-gin/internal/service"
	"github.com/mautops/headcount-gin/internal/utils"
)

// QueryController 查询控制器
type QueryController struct {
	queryService service.QueryService
}

// NewQueryController 创建查询控制器
func NewQueryController(queryService service.QueryService) *QueryController {
	return &QueryController{
		queryService: queryService,
	}
}

// ListRequests 列出变更请求
// @Summary      获取变更请求列表
// @Description  分页获取变更请求列表,支持多条件查询、排序
// @Tags         查询统计
// @Accept       json
// @Produce      json
// @Param        status query string false "请求状态" Enums(pending, approved, rejected)
// @Param        position_id query string false "岗位 ID"
// @Param        requester_id query string false "申请人 ID"
// @Param        created_at_start query string false "创建时间起始"
// @Param        created_at_end query string false "创建时间结束"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        sort_by query string false "排序字段" default(created_at)
// @Param        order query string false "排序方向" Enums(asc, desc) default(desc)
// @Success      200  {object}  PaginatedResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests [get]
// @Security     BearerAuth
func (c *QueryController) ListRequests(ctx *gin.Context) {
	filter := service.ListRequestsFilter{
		SortBy: ctx.DefaultQuery("sort_by", "created_at"),
		Order:  ctx.DefaultQuery("order", "desc"),
	}

	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}
	if positionID := ctx.Query("position_id"); positionID != "" {
		filter.PositionID = &positionID
	}
	if requesterID := ctx.Query("requester_id"); requesterID != "" {
		filter.RequesterID = &requesterID
	}
	if start := ctx.Query("created_at_start"); start != "" {
		filter.StartTime = &start
	}
	if end := ctx.Query("created_at_end"); end != "" {
		filter.EndTime = &end
	}

	// 手动解析分页参数（Gin 无法可靠绑定下划线参数）
	if pageStr := ctx.Query("page"); pageStr != "" {
		var page int
		if _, err := fmt.Sscanf(pageStr, "%d", &page); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if pageSizeStr := ctx.Query("page_size"); pageSizeStr != "" {
		var pageSize int
		if _, err := fmt.Sscanf(pageSizeStr, "%d", &pageSize); err == nil && pageSize > 0 {
			filter.PageSize = pageSize
		}
	}

	// 设置默认值
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	requests, total, err := c.queryService.ListRequests(&filter)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "failed to list requests", err.Error())
		return
	}

	// 计算总页数
	totalPage := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	Paginated(ctx, requests, PaginationInfo{
		Page:      filter.Page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetHistory 获取状态历史
// @Summary      获取请求状态历史
// @Description  按时间顺序返回变更请求的状态转换记录
// @Tags         查询统计
// @Accept       json
// @Produce      json
// @Param        id path string true "请求 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests/{id}/history [get]
// @Security     BearerAuth
func (c *QueryController) GetHistory(ctx *gin.Context) {
	requestID := ctx.Param("id")
	if err := utils.ValidateRequestID(requestID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request ID", err.Error())
		return
	}

	history, err := c.queryService.GetHistory(requestID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get history", err.Error())
		return
	}

	Success(ctx, history)
}

// GetSignatures 获取审批签名
// @Summary      获取请求审批签名
// @Description  返回变更请求的审批签名记录
// @Tags         查询统计
// @Accept       json
// @Produce      json
// @Param        id path string true "请求 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /requests/{id}/signatures [get]
// @Security     BearerAuth
func (c *QueryController) GetSignatures(ctx *gin.Context) {
	requestID := ctx.Param("id")
	if err := utils.ValidateRequestID(requestID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request ID", err.Error())
		return
	}

	signatures, err := c.queryService.GetSignatures(requestID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get signatures", err.Error())
		return
	}

	Success(ctx, signatures)
}
