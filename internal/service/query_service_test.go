package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/service"
	"github.com/mautops/headcount-gin/internal/workflow"
)

// setupTestDB 创建内存测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.PositionModel{},
		&model.GovernanceBodyModel{},
		&model.GovernanceMembershipModel{},
		&model.ChangeRequestModel{},
		&model.SignatureModel{},
		&model.HistoryEntryModel{},
		&model.LookupValueModel{},
	)
	require.NoError(t, err)

	return db
}

func stringPtr(s string) *string {
	return &s
}

// seedRequests 准备测试用的变更请求数据
func seedRequests(t *testing.T, db *gorm.DB) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	requests := []*model.ChangeRequestModel{
		{ID: "req-001", PositionID: "pos-001", RequesterID: "user-001", CurrentValue: 5, RequestedValue: 8, Reason: "扩编", Status: model.RequestStatusPending, CreatedAt: base, UpdatedAt: base},
		{ID: "req-002", PositionID: "pos-001", RequesterID: "user-002", CurrentValue: 5, RequestedValue: 3, Reason: "缩编", Status: model.RequestStatusApproved, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		{ID: "req-003", PositionID: "pos-002", RequesterID: "user-001", CurrentValue: 2, RequestedValue: 4, Reason: "扩编", Status: model.RequestStatusRejected, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range requests {
		require.NoError(t, db.Create(r).Error)
	}
}

// TestQueryServiceListRequests 测试请求列表查询
func TestQueryServiceListRequests(t *testing.T) {
	db := setupTestDB(t)
	seedRequests(t, db)
	svc := service.NewQueryService(db)

	// 无过滤条件: 返回全部,默认按创建时间倒序
	requests, total, err := svc.ListRequests(&service.ListRequestsFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, requests, 3)
	assert.Equal(t, "req-003", requests[0].ID)

	// 按状态过滤
	requests, total, err = svc.ListRequests(&service.ListRequestsFilter{
		Status: stringPtr(model.RequestStatusPending),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, requests, 1)
	assert.Equal(t, "req-001", requests[0].ID)

	// 按岗位过滤
	_, total, err = svc.ListRequests(&service.ListRequestsFilter{
		PositionID: stringPtr("pos-001"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 按申请人过滤
	_, total, err = svc.ListRequests(&service.ListRequestsFilter{
		RequesterID: stringPtr("user-001"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

// TestQueryServiceListRequestsPagination 测试分页
func TestQueryServiceListRequestsPagination(t *testing.T) {
	db := setupTestDB(t)
	seedRequests(t, db)
	svc := service.NewQueryService(db)

	// 第一页
	requests, total, err := svc.ListRequests(&service.ListRequestsFilter{
		Page:     1,
		PageSize: 2,
		SortBy:   "created_at",
		Order:    "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, requests, 2)
	assert.Equal(t, "req-001", requests[0].ID)

	// 第二页
	requests, total, err = svc.ListRequests(&service.ListRequestsFilter{
		Page:     2,
		PageSize: 2,
		SortBy:   "created_at",
		Order:    "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, requests, 1)
	assert.Equal(t, "req-003", requests[0].ID)
}

// TestQueryServiceListRequestsInvalidSort 测试非法排序字段被拒绝
func TestQueryServiceListRequestsInvalidSort(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewQueryService(db)

	_, _, err := svc.ListRequests(&service.ListRequestsFilter{
		SortBy: "id; DROP TABLE change_requests",
	})
	assert.Error(t, err)

	_, _, err = svc.ListRequests(&service.ListRequestsFilter{
		Order: "sideways",
	})
	assert.Error(t, err)
}

// TestQueryServiceGetHistory 测试历史查询
func TestQueryServiceGetHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewQueryService(db)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	entries := []*model.HistoryEntryModel{
		{ID: "hist-001", RequestID: "req-001", OldStatus: nil, NewStatus: model.RequestStatusPending, Notes: "request created", CreatedAt: base},
		{ID: "hist-002", RequestID: "req-001", OldStatus: stringPtr(model.RequestStatusPending), NewStatus: model.RequestStatusApproved, ActorID: stringPtr("approver-001"), Notes: "同意", CreatedAt: base.Add(time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, db.Create(e).Error)
	}

	history, err := svc.GetHistory("req-001")
	require.NoError(t, err)
	require.Len(t, history, 2)

	// 按时间升序,首条 old_status 为空
	assert.Nil(t, history[0].OldStatus)
	assert.Equal(t, model.RequestStatusPending, history[0].NewStatus)
	require.NotNil(t, history[1].OldStatus)
	assert.Equal(t, model.RequestStatusApproved, history[1].NewStatus)

	// 未知请求返回空列表而非错误
	history, err = svc.GetHistory("req-missing")
	require.NoError(t, err)
	assert.Empty(t, history)
}

// TestQueryServiceGetSignatures 测试签名查询
func TestQueryServiceGetSignatures(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewQueryService(db)

	signedAt := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
	signature := &model.SignatureModel{
		ID:            "sig-001",
		RequestID:     "req-001",
		SignerID:      "approver-001",
		SignatureType: model.SignatureTypeApproval,
		SignatureHash: workflow.ComputeSignatureHash("approver-001", "req-001", signedAt),
		SignedAt:      signedAt,
	}
	require.NoError(t, db.Create(signature).Error)

	signatures, err := svc.GetSignatures("req-001")
	require.NoError(t, err)
	require.Len(t, signatures, 1)
	assert.Equal(t, "approver-001", signatures[0].SignerID)
	assert.Equal(t, model.SignatureTypeApproval, signatures[0].SignatureType)
	assert.Equal(t, signature.SignatureHash, signatures[0].SignatureHash)
}

// TestQueryServicePositions 测试岗位查询
func TestQueryServicePositions(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewQueryService(db)

	now := time.Now().UTC()
	positions := []*model.PositionModel{
		{ID: "pos-001", Title: "软件工程师", OrgUnitID: "org-001", AuthorizedHeadcount: 5, Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: "pos-002", Title: "产品经理", OrgUnitID: "org-002", AuthorizedHeadcount: 2, Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range positions {
		require.NoError(t, db.Create(p).Error)
	}

	// 全量列表
	all, err := svc.ListPositions("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 按组织单元过滤
	filtered, err := svc.ListPositions("org-001")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "pos-001", filtered[0].ID)

	// 岗位详情
	position, err := svc.GetPosition("pos-002")
	require.NoError(t, err)
	assert.Equal(t, "产品经理", position.Title)

	// 不存在的岗位返回 NotFoundError
	var notFoundErr *workflow.NotFoundError
	_, err = svc.GetPosition("pos-missing")
	assert.ErrorAs(t, err, &notFoundErr)
}
