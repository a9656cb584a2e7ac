package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mautops/headcount-gin/internal/service"
)

// LookupController 字典控制器
type LookupController struct {
	lookupService service.LookupService
}

// NewLookupController 创建字典控制器
func NewLookupController(lookupService service.LookupService) *LookupController {
	return &LookupController{
		lookupService: lookupService,
	}
}

// Get 获取指定类别的字典项
// @Summary      获取字典项
// @Description  按类别获取字典项,类别不存在时返回空列表
// @Tags         字典
// @Accept       json
// @Produce      json
// @Param        category path string true "字典类别"
// @Success      200  {object}  Response
// @Router       /lookups/{category} [get]
// @Security     BearerAuth
func (c *LookupController) Get(ctx *gin.Context) {
	category := ctx.Param("category")
	if category == "" {
		Error(ctx, http.StatusBadRequest, "invalid category", "category cannot be empty")
		return
	}

	Success(ctx, c.lookupService.Get(category))
}

// Categories 获取所有字典类别
// @Summary      获取字典类别列表
// @Description  返回所有已配置的字典类别
// @Tags         字典
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Router       /lookups [get]
// @Security     BearerAuth
func (c *LookupController) Categories(ctx *gin.Context) {
	Success(ctx, c.lookupService.Categories())
}

// Reload 重载字典目录
// @Summary      重载字典目录
// @Description  从数据库重新加载字典目录
// @Tags         字典
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /lookups/reload [post]
// @Security     BearerAuth
func (c *LookupController) Reload(ctx *gin.Context) {
	if err := c.lookupService.Reload(); err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to reload lookups", err.Error())
		return
	}

	Success(ctx, nil)
}
