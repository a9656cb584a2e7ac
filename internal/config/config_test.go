package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mautops/headcount-gin/internal/config"
)

// TestDefaultConfig 测试默认配置
func TestDefaultConfig(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, float64(100), cfg.Server.RateLimitRPS)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "headcount", cfg.Database.DBName)
	assert.Equal(t, 5, cfg.Notify.Workers)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.IsProduction())
}

// TestLoadConfigFromFile 测试从文件加载配置
func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
env: production
server:
  host: 127.0.0.1
  port: 9090
database:
  dbname: headcount_prod
notify:
  workers: 10
  webhooks:
    - url: https://hooks.example.com/headcount
      auth_token: secret
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "headcount_prod", cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Notify.Workers)
	require.Len(t, cfg.Notify.Webhooks, 1)
	assert.Equal(t, "https://hooks.example.com/headcount", cfg.Notify.Webhooks[0].URL)

	// 未覆盖的字段保持默认值
	assert.Equal(t, 5432, cfg.Database.Port)
}

// TestLoadConfigMissingFile 测试配置文件不存在时报错
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
