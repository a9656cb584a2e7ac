package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mautops/headcount-gin/internal/utils"
)

// TestValidateSortField 测试排序字段白名单
func TestValidateSortField(t *testing.T) {
	assert.NoError(t, utils.ValidateSortField("created_at"))
	assert.NoError(t, utils.ValidateSortField("status"))
	assert.NoError(t, utils.ValidateSortField("Reviewed_At")) // 大小写不敏感

	assert.Error(t, utils.ValidateSortField(""))
	assert.Error(t, utils.ValidateSortField("reason"))
	assert.Error(t, utils.ValidateSortField("created_at; DROP TABLE change_requests"))
}

// TestValidateSortOrder 测试排序方向校验
func TestValidateSortOrder(t *testing.T) {
	assert.NoError(t, utils.ValidateSortOrder("asc"))
	assert.NoError(t, utils.ValidateSortOrder("DESC"))
	assert.NoError(t, utils.ValidateSortOrder(" desc "))

	assert.Error(t, utils.ValidateSortOrder(""))
	assert.Error(t, utils.ValidateSortOrder("sideways"))
}

// TestSanitizeSortField 测试排序字段清理与回退
func TestSanitizeSortField(t *testing.T) {
	assert.Equal(t, "status", utils.SanitizeSortField("STATUS"))
	assert.Equal(t, "created_at", utils.SanitizeSortField("reason"))
	assert.Equal(t, "created_at", utils.SanitizeSortField(""))
}

// TestSanitizeSortOrder 测试排序方向清理与回退
func TestSanitizeSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", utils.SanitizeSortOrder("asc"))
	assert.Equal(t, "DESC", utils.SanitizeSortOrder("unknown"))
	assert.Equal(t, "DESC", utils.SanitizeSortOrder(""))
}
