package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mautops/headcount-gin/internal/service"
)

// StatisticsController 统计控制器
type StatisticsController struct {
	statisticsService service.StatisticsService
}

// NewStatisticsController 创建统计控制器
func NewStatisticsController(statisticsService service.StatisticsService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
	}
}

// ByStatus 按状态统计变更请求
// @Summary      按状态统计
// @Description  返回各状态下的变更请求数量
// @Tags         查询统计
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /statistics/requests [get]
// @Security     BearerAuth
func (c *StatisticsController) ByStatus(ctx *gin.Context) {
	stats, err := c.statisticsService.GetRequestStatisticsByStatus()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get statistics", err.Error())
		return
	}

	Success(ctx, stats)
}

// Resolutions 裁决统计
// @Summary      裁决统计
// @Description  返回已裁决请求的数量与批准率
// @Tags         查询统计
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /statistics/resolutions [get]
// @Security     BearerAuth
func (c *StatisticsController) Resolutions(ctx *gin.Context) {
	stats, err := c.statisticsService.GetResolutionStatistics()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to get statistics", err.Error())
		return
	}

	Success(ctx, stats)
}
