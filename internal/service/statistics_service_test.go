package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/service"
)

// TestStatisticsByStatus 测试按状态统计
func TestStatisticsByStatus(t *testing.T) {
	db := setupTestDB(t)
	seedRequests(t, db)
	svc := service.NewStatisticsService(db)

	stats, err := svc.GetRequestStatisticsByStatus()
	require.NoError(t, err)

	counts := make(map[string]int64)
	for _, s := range stats {
		counts[s.Status] = s.Count
	}
	assert.Equal(t, int64(1), counts[model.RequestStatusPending])
	assert.Equal(t, int64(1), counts[model.RequestStatusApproved])
	assert.Equal(t, int64(1), counts[model.RequestStatusRejected])
}

// TestResolutionStatistics 测试裁决统计与批准率
func TestResolutionStatistics(t *testing.T) {
	db := setupTestDB(t)
	seedRequests(t, db)
	svc := service.NewStatisticsService(db)

	stats, err := svc.GetResolutionStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalResolved)
	assert.Equal(t, int64(1), stats.ApprovedCount)
	assert.Equal(t, int64(1), stats.RejectedCount)
	assert.InDelta(t, 0.5, stats.ApprovalRate, 0.001)
}

// TestResolutionStatisticsEmpty 测试无已裁决请求时批准率为零
func TestResolutionStatisticsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := service.NewStatisticsService(db)

	stats, err := svc.GetResolutionStatistics()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalResolved)
	assert.Equal(t, 0.0, stats.ApprovalRate)
}
