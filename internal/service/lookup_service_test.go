package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mautops/headcount-gin/internal/model"
	"github.com/mautops/headcount-gin/internal/repository"
	"github.com/mautops/headcount-gin/internal/service"
)

func seedLookupValues(t *testing.T, db *gorm.DB) {
	now := time.Now().UTC()
	values := []*model.LookupValueModel{
		{ID: "lv-001", Category: "change_reason", Value: "expansion", Label: "业务扩张", SortOrder: 1, Active: true, CreatedAt: now},
		{ID: "lv-002", Category: "change_reason", Value: "restructure", Label: "组织调整", SortOrder: 2, Active: true, CreatedAt: now},
		{ID: "lv-003", Category: "change_reason", Value: "obsolete", Label: "已废弃", SortOrder: 3, Active: false, CreatedAt: now},
		{ID: "lv-004", Category: "org_unit_type", Value: "department", Label: "部门", SortOrder: 1, Active: true, CreatedAt: now},
	}
	for _, v := range values {
		require.NoError(t, db.Create(v).Error)
	}
}

// TestLookupServiceCatalog 测试字典目录加载
func TestLookupServiceCatalog(t *testing.T) {
	db := setupTestDB(t)
	seedLookupValues(t, db)

	svc, err := service.NewLookupService(repository.NewLookupRepository(db))
	require.NoError(t, err)

	// 按类别获取,保持配置排序,停用项不出现
	items := svc.Get("change_reason")
	require.Len(t, items, 2)
	assert.Equal(t, "expansion", items[0].Value)
	assert.Equal(t, "业务扩张", items[0].Label)
	assert.Equal(t, "restructure", items[1].Value)

	// 未知类别返回空列表而非错误
	assert.Empty(t, svc.Get("unknown_category"))

	// 类别列表
	categories := svc.Categories()
	assert.ElementsMatch(t, []string{"change_reason", "org_unit_type"}, categories)
}

// TestLookupServiceReload 测试字典重载
func TestLookupServiceReload(t *testing.T) {
	db := setupTestDB(t)
	seedLookupValues(t, db)

	svc, err := service.NewLookupService(repository.NewLookupRepository(db))
	require.NoError(t, err)
	require.Len(t, svc.Get("change_reason"), 2)

	// 新增字典项后重载可见
	require.NoError(t, db.Create(&model.LookupValueModel{
		ID: "lv-005", Category: "change_reason", Value: "budget", Label: "预算调整", SortOrder: 4, Active: true, CreatedAt: time.Now().UTC(),
	}).Error)

	require.NoError(t, svc.Reload())
	assert.Len(t, svc.Get("change_reason"), 3)
}
