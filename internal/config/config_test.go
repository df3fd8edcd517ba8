package config_test

import (
	"os"
	"testing"

	"github.com/mautops/takeout-gin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig 测试默认配置
func TestDefaultConfig(t *testing.T) {
	cfg := config.Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "takeout", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 4, cfg.Takeout.BulkWorkers)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.InDelta(t, 100.0, cfg.RateLimit.RPS, 0.0001)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
}

// TestLoadWithEnvOverride 测试环境变量覆盖
func TestLoadWithEnvOverride(t *testing.T) {
	os.Setenv("APP_SERVER_PORT", "9090")
	os.Setenv("APP_DATABASE_HOST", "db.internal")
	os.Setenv("APP_TAKEOUT_BULK_WORKERS", "8")
	os.Setenv("APP_RATE_LIMIT_RPS", "50")
	defer func() {
		os.Unsetenv("APP_SERVER_PORT")
		os.Unsetenv("APP_DATABASE_HOST")
		os.Unsetenv("APP_TAKEOUT_BULK_WORKERS")
		os.Unsetenv("APP_RATE_LIMIT_RPS")
	}()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8, cfg.Takeout.BulkWorkers)
	assert.InDelta(t, 50.0, cfg.RateLimit.RPS, 0.0001)
}

// TestIsProduction 测试环境判断
func TestIsProduction(t *testing.T) {
	assert.False(t, config.IsProduction(nil))
	assert.False(t, config.IsProduction(&config.Config{Env: "development"}))
	assert.True(t, config.IsProduction(&config.Config{Env: "production"}))
}
