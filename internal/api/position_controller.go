package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mautops/headcount-gin/internal/service"
	"github.com/mautops/headcount-gin/internal/utils"
)

// PositionController 岗位控制器
type PositionController struct {
	queryService service.QueryService
}

// NewPositionController 创建岗位控制器
func NewPositionController(queryService service.QueryService) *PositionController {
	return &PositionController{
		queryService: queryService,
	}
}

// List 列出岗位
// @Summary      获取岗位列表
// @Description  获取岗位列表,支持按组织单元过滤
// @Tags         岗位管理
// @Accept       json
// @Produce      json
// @Param        org_unit_id query string false "组织单元 ID"
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /positions [get]
// @Security     BearerAuth
func (c *PositionController) List(ctx *gin.Context) {
	orgUnitID := ctx.Query("org_unit_id")

	positions, err := c.queryService.ListPositions(orgUnitID)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list positions", err.Error())
		return
	}

	Success(ctx, positions)
}

// Get 获取岗位详情
// @Summary      获取岗位详情
// @Description  根据 ID 获取岗位详情,包含当前核定编制
// @Tags         岗位管理
// @Accept       json
// @Produce      json
// @Param        id path string true "岗位 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /positions/{id} [get]
// @Security     BearerAuth
func (c *PositionController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidatePositionID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid position ID", err.Error())
		return
	}

	position, err := c.queryService.GetPosition(id)
	if err != nil {
		HandleWorkflowError(ctx, err)
		return
	}

	Success(ctx, position)
}
