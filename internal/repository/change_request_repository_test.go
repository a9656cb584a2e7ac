package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/repository"
)

// setupTestDB 创建内存测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.ChangeRequestModel{},
		&model.GovernanceBodyModel{},
		&model.GovernanceMembershipModel{},
	))
	return db
}

func seedPendingRequest(t *testing.T, db *gorm.DB, id string) {
	now := time.Now().UTC()
	request := &model.ChangeRequestModel{
		ID:             id,
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
}

// TestResolvePending 测试 pending 请求的条件更新
func TestResolvePending(t *testing.T) {
	db := setupTestDB(t)
	seedPendingRequest(t, db, "req-001")

	reviewedAt := time.Now().UTC()
	rows, err := repository.ResolvePending(db, "req-001", model.RequestStatusApproved, "approver-001", reviewedAt, "同意")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	var request model.ChangeRequestModel
	require.NoError(t, db.Where("id = ?", "req-001").First(&request).Error)
	assert.Equal(t, model.RequestStatusApproved, request.Status)
	require.NotNil(t, request.ReviewedBy)
	assert.Equal(t, "approver-001", *request.ReviewedBy)
	assert.Equal(t, "同意", request.ReviewNotes)
}

// TestResolvePendingAlreadyResolved 测试已裁决请求不再匹配
func TestResolvePendingAlreadyResolved(t *testing.T) {
	db := setupTestDB(t)
	seedPendingRequest(t, db, "req-001")

	reviewedAt := time.Now().UTC()
	rows, err := repository.ResolvePending(db, "req-001", model.RequestStatusApproved, "approver-001", reviewedAt, "同意")
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	// 第二次条件更新不匹配任何行,请求保持第一次的终态
	rows, err = repository.ResolvePending(db, "req-001", model.RequestStatusRejected, "approver-002", reviewedAt, "否决")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	var request model.ChangeRequestModel
	require.NoError(t, db.Where("id = ?", "req-001").First(&request).Error)
	assert.Equal(t, model.RequestStatusApproved, request.Status)
	assert.Equal(t, "approver-001", *request.ReviewedBy)
}

// TestResolvePendingMissingRequest 测试不存在的请求返回零行
func TestResolvePendingMissingRequest(t *testing.T) {
	db := setupTestDB(t)

	rows, err := repository.ResolvePending(db, "req-missing", model.RequestStatusApproved, "approver-001", time.Now().UTC(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

// TestChangeRequestFilter 测试过滤查询
func TestChangeRequestFilter(t *testing.T) {
	db := setupTestDB(t)
	seedPendingRequest(t, db, "req-001")
	seedPendingRequest(t, db, "req-002")

	repo := repository.NewChangeRequestRepository(db)

	pending := model.RequestStatusPending
	requests, err := repo.FindByFilter(&repository.ChangeRequestFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, requests, 2)

	positionID := "pos-missing"
	requests, err = repo.FindByFilter(&repository.ChangeRequestFilter{PositionID: &positionID})
	require.NoError(t, err)
	assert.Empty(t, requests)
}
