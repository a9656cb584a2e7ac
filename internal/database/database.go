package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mautops/headcount-gin/internal/config"
	"github.com/mautops/headcount-gin/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // 秒
	ConnMaxIdleTime int // 秒
}

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// GetPoolConfig 获取连接池配置
func GetPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 3600, // 1 小时
		ConnMaxIdleTime: 600,  // 10 分钟
	}
}

// Connect 连接数据库
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 从配置中读取连接池参数,如果没有配置则使用默认值
	var poolConfig *PoolConfig
	if cfg.MaxIdleConns > 0 || cfg.MaxOpenConns > 0 {
		poolConfig = &PoolConfig{
			MaxIdleConns:    cfg.MaxIdleConns,
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		}
		if poolConfig.MaxIdleConns == 0 {
			poolConfig.MaxIdleConns = 10
		}
		if poolConfig.MaxOpenConns == 0 {
			poolConfig.MaxOpenConns = 100
		}
		if poolConfig.ConnMaxLifetime == 0 {
			poolConfig.ConnMaxLifetime = 3600
		}
		if poolConfig.ConnMaxIdleTime == 0 {
			poolConfig.ConnMaxIdleTime = 600
		}
	} else {
		poolConfig = GetPoolConfig()
	}

	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(poolConfig.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(poolConfig.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry 带重试的数据库连接
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		// 如果不是最后一次重试,等待后重试
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2 // 指数退避
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	// 检测数据库类型
	dialector := db.Dialector.Name()

	// SQLite 不支持 jsonb,需要手动创建表
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		// PostgreSQL 等其他数据库使用 AutoMigrate
		if err := db.AutoMigrate(
			&model.PositionModel{},
			&model.ChangeRequestModel{},
			&model.SignatureModel{},
			&model.HistoryEntryModel{},
			&model.GovernanceBodyModel{},
			&model.GovernanceMembershipModel{},
			&model.LookupValueModel{},
			&model.NotificationModel{},
			&model.AuditLogModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	// 创建索引
	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables 为 SQLite 手动创建表（使用 TEXT 替代 jsonb）
func createSQLiteTables(db *gorm.DB) error {
	// 创建 positions 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS positions (
			id VARCHAR(64) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			org_unit_id VARCHAR(64) NOT NULL,
			authorized_headcount INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create positions table: %w", err)
	}

	// 创建 change_requests 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS change_requests (
			id VARCHAR(64) PRIMARY KEY,
			position_id VARCHAR(64) NOT NULL,
			requester_id VARCHAR(64) NOT NULL,
			current_value INTEGER NOT NULL,
			requested_value INTEGER NOT NULL,
			reason TEXT NOT NULL,
			status VARCHAR(32) NOT NULL,
			governance_body_id VARCHAR(64),
			reviewed_by VARCHAR(64),
			reviewed_at DATETIME,
			review_notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create change_requests table: %w", err)
	}

	// 创建 signatures 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS signatures (
			id VARCHAR(64) PRIMARY KEY,
			request_id VARCHAR(64) NOT NULL,
			signer_id VARCHAR(64) NOT NULL,
			governance_body_id VARCHAR(64),
			signature_type VARCHAR(32) NOT NULL,
			signature_hash VARCHAR(64) NOT NULL,
			signed_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create signatures table: %w", err)
	}

	// 创建 request_history 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS request_history (
			id VARCHAR(64) PRIMARY KEY,
			request_id VARCHAR(64) NOT NULL,
			old_status VARCHAR(32),
			new_status VARCHAR(32) NOT NULL,
			actor_id VARCHAR(64),
			notes TEXT,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create request_history table: %w", err)
	}

	// 创建 governance_bodies 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS governance_bodies (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			org_unit_id VARCHAR(64) NOT NULL,
			can_approve BOOLEAN NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create governance_bodies table: %w", err)
	}

	// 创建 governance_memberships 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS governance_memberships (
			id VARCHAR(64) PRIMARY KEY,
			body_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create governance_memberships table: %w", err)
	}

	// 创建 lookup_values 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lookup_values (
			id VARCHAR(64) PRIMARY KEY,
			category VARCHAR(64) NOT NULL,
			value VARCHAR(64) NOT NULL,
			label VARCHAR(255) NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create lookup_values table: %w", err)
	}

	// 创建 notifications 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id VARCHAR(64) PRIMARY KEY,
			request_id VARCHAR(64) NOT NULL,
			type VARCHAR(32) NOT NULL,
			payload TEXT NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			retry_count INTEGER DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create notifications table: %w", err)
	}

	// 创建 audit_logs 表
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_logs (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			action VARCHAR(64) NOT NULL,
			resource_type VARCHAR(32) NOT NULL,
			resource_id VARCHAR(64) NOT NULL,
			request_id VARCHAR(64),
			ip VARCHAR(45),
			user_agent TEXT,
			details TEXT,
			created_at DATETIME NOT NULL
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}

	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	// change_requests 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_requests_status_position ON change_requests(status, position_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_requests_status_position: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_requests_requester ON change_requests(requester_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_requests_requester: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_requests_created_at ON change_requests(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_requests_created_at: %w", err)
	}

	// signatures 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_signatures_request_id ON signatures(request_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_signatures_request_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_signatures_signer ON signatures(signer_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_signatures_signer: %w", err)
	}

	// request_history 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_history_request_id ON request_history(request_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_history_request_id: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_history_created_at ON request_history(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create idx_history_created_at: %w", err)
	}

	// governance 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bodies_org_unit ON governance_bodies(org_unit_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_bodies_org_unit: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_memberships_user ON governance_memberships(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_memberships_user: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_memberships_body ON governance_memberships(body_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_memberships_body: %w", err)
	}

	// lookup_values 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_lookups_category ON lookup_values(category)").Error; err != nil {
		return fmt.Errorf("failed to create idx_lookups_category: %w", err)
	}

	// notifications 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_status ON notifications(status)").Error; err != nil {
		return fmt.Errorf("failed to create idx_notifications_status: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_request_id ON notifications(request_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_notifications_request_id: %w", err)
	}

	// audit_logs 表索引
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs(resource_type, resource_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_resource: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_user_id ON audit_logs(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create idx_audit_user_id: %w", err)
	}

	return nil
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return false
	}

	return true
}
