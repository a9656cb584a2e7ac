package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/config"
	"github.com/mautops/headcount-gin/internal/database"
	"github.com/mautops/headcount-gin/internal/model"
)

// TestMigrateCreatesSchema 测试迁移建表建索引
// Migrate 自带索引创建,调用方无需再调 CreateIndexes
func TestMigrateCreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	now := time.Now().UTC()
	request := &model.ChangeRequestModel{
		ID:             "req-001",
		PositionID:     "pos-001",
		RequesterID:    "user-001",
		CurrentValue:   5,
		RequestedValue: 8,
		Reason:         "扩编",
		Status:         model.RequestStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, db.Create(request).Error)

	var count int64
	require.NoError(t, db.Model(&model.ChangeRequestModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 索引已随迁移创建
	var indexCount int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_requests_status_position'",
	).Scan(&indexCount).Error)
	assert.Equal(t, int64(1), indexCount)
}

// TestMigrateIdempotent 测试重复迁移无副作用
func TestMigrateIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.CreateIndexes(db))
}

// TestBuildDSN 测试 DSN 构建
func TestBuildDSN(t *testing.T) {
	dsn := database.BuildDSN(config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "headcount",
		SSLMode:  "disable",
	})
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=headcount sslmode=disable", dsn)
}
