package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/auth"
	"github.com/mautops/headcount-gin/internal/config"
	"github.com/mautops/headcount-gin/internal/websocket"

	_ "github.com/mautops/headcount-gin/docs" // 导入生成的 docs 包
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config     *config.Config
	DB         *gorm.DB
	Hub        *websocket.Hub
	Validator  *auth.TokenValidator
	Request    *RequestController
	Query      *QueryController
	Position   *PositionController
	Lookup     *LookupController
	Statistics *StatisticsController
}

// SetupRoutes 配置路由
func SetupRoutes(deps *RouterDeps) *gin.Engine {
	if deps.Config != nil && deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(ErrorHandlerMiddleware())
	if deps.Config != nil {
		router.Use(CORSMiddleware(deps.Config.CORS.AllowedOrigins))
		if deps.Config.Server.RateLimitRPS > 0 {
			router.Use(RateLimitMiddleware(deps.Config.Server.RateLimitRPS, deps.Config.Server.RateLimitBurst))
		}
		if deps.Config.Tracing.Enabled {
			router.Use(TracingMiddleware())
		}
	}

	// 健康检查
	healthController := NewHealthController(deps.DB)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 路由
	if deps.Hub != nil && deps.Validator != nil {
		router.GET("/ws/requests/:id", websocket.SubscribeHandler(deps.Hub, deps.Validator))
	}

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("http://localhost:8080/swagger/doc.json"), // Swagger JSON URL
	))

	// API v1 路由组
	v1 := router.Group("/api/v1")
	if deps.Validator != nil {
		v1.Use(auth.AuthMiddleware(deps.Validator))
	}
	{
		// 变更请求路由
		requests := v1.Group("/requests")
		{
			requests.POST("", deps.Request.Create)
			requests.GET("", deps.Query.ListRequests)
			requests.GET("/:id", deps.Request.Get)
			requests.POST("/:id/approve", deps.Request.Approve)
			requests.POST("/:id/reject", deps.Request.Reject)
			requests.GET("/:id/history", deps.Query.GetHistory)
			requests.GET("/:id/signatures", deps.Query.GetSignatures)
		}

		// 岗位路由
		positions := v1.Group("/positions")
		{
			positions.GET("", deps.Position.List)
			positions.GET("/:id", deps.Position.Get)
		}

		// 字典路由
		lookups := v1.Group("/lookups")
		{
			lookups.GET("", deps.Lookup.Categories)
			lookups.GET("/:category", deps.Lookup.Get)
			lookups.POST("/reload", deps.Lookup.Reload)
		}

		// 统计路由
		statistics := v1.Group("/statistics")
		{
			statistics.GET("/requests", deps.Statistics.ByStatus)
			statistics.GET("/resolutions", deps.Statistics.Resolutions)
		}
	}

	return router
}
