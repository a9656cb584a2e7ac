package container

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/auth"
	"github.com/mautops/headcount-gin/internal/config"
	"github.com/mautops/headcount-gin/internal/database"
	"github.com/mautops/headcount-gin/internal/metrics"
	"github.com/mautops/headcount-gin/internal/repository"
	"github.com/mautops/headcount-gin/internal/service"
	"github.com/mautops/headcount-gin/internal/websocket"
	"github.com/mautops/headcount-gin/internal/workflow"
)

// Container 依赖注入容器
// 管理所有应用依赖,包括数据库、工作流引擎、服务、推送等
type Container struct {
	db                *gorm.DB
	dispatcher        workflow.Dispatcher
	engine            *workflow.Engine
	hub               *websocket.Hub
	validator         *auth.TokenValidator
	requestService    service.RequestService
	queryService      service.QueryService
	lookupService     service.LookupService
	statisticsService service.StatisticsService
	auditLogService   service.AuditLogService
	collector         *metrics.Collector
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 1. 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移(含索引创建)
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. 初始化通知分发器
	dispatcher := workflow.NewWebhookDispatcher(db, cfg.Notify.Webhooks, cfg.Notify.Workers, logger)

	// 3. 初始化工作流引擎
	authorizer := workflow.NewGovernanceAuthorizer(db)
	engine := workflow.NewEngine(db, authorizer, dispatcher, logger)

	// 4. 初始化 WebSocket Hub
	hub := websocket.NewHub(logger)
	go hub.Run()

	// 5. 初始化 Token 验证器(未配置 issuer 时禁用认证)
	var validator *auth.TokenValidator
	if cfg.Auth.Issuer != "" {
		validator = auth.NewTokenValidator(cfg.Auth.Issuer, cfg.Auth.JWKSURL)
	}

	// 6. 初始化服务层
	auditLogService := service.NewAuditLogService(repository.NewAuditLogRepository(db))
	requestService := service.NewRequestService(engine, repository.NewChangeRequestRepository(db), auditLogService, hub)
	queryService := service.NewQueryService(db)
	statisticsService := service.NewStatisticsService(db)

	lookupService, err := service.NewLookupService(repository.NewLookupRepository(db))
	if err != nil {
		return nil, fmt.Errorf("failed to load lookup catalog: %w", err)
	}

	// 7. 启动指标采集器
	collector := metrics.NewCollector(db, 30*time.Second, logger)
	collector.Start()

	return &Container{
		db:                db,
		dispatcher:        dispatcher,
		engine:            engine,
		hub:               hub,
		validator:         validator,
		requestService:    requestService,
		queryService:      queryService,
		lookupService:     lookupService,
		statisticsService: statisticsService,
		auditLogService:   auditLogService,
		collector:         collector,
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Engine 获取工作流引擎
func (c *Container) Engine() *workflow.Engine {
	return c.engine
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Validator 获取 Token 验证器
func (c *Container) Validator() *auth.TokenValidator {
	return c.validator
}

// RequestService 获取变更请求服务
func (c *Container) RequestService() service.RequestService {
	return c.requestService
}

// QueryService 获取查询服务
func (c *Container) QueryService() service.QueryService {
	return c.queryService
}

// LookupService 获取字典服务
func (c *Container) LookupService() service.LookupService {
	return c.lookupService
}

// StatisticsService 获取统计服务
func (c *Container) StatisticsService() service.StatisticsService {
	return c.statisticsService
}

// AuditLogService 获取审计日志服务
func (c *Container) AuditLogService() service.AuditLogService {
	return c.auditLogService
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	// 停止指标采集
	if c.collector != nil {
		c.collector.Stop()
	}

	// 排空通知队列
	if c.dispatcher != nil {
		c.dispatcher.Stop()
	}

	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	return nil
}
