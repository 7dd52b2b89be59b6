package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: Mealwise\n"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Provider)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ProfileTTL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "admin", cfg.Auth.AdminRole)
	assert.Equal(t, "roles", cfg.Auth.RolesClaim)
	assert.Equal(t, 500*time.Millisecond, cfg.Catalog.WatchDebounce)
	assert.Empty(t, cfg.Catalog.ChunkDir)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "mealwise.db", cfg.GetDSN())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  driver: postgres
  host: db.internal
  database: meals
cache:
  provider: redis
`)
	t.Setenv("MEALWISE_REDIS_HOST", "cache.internal")
	t.Setenv("MEALWISE_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Provider)
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
	assert.Contains(t, cfg.GetDSN(), "host=db.internal")
	assert.Contains(t, cfg.GetDSN(), "dbname=meals")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "UnknownDriver",
			body:   "database:\n  driver: mysql\n",
			errMsg: "database.driver",
		},
		{
			name:   "UnknownCacheProvider",
			body:   "cache:\n  provider: memcached\n",
			errMsg: "cache.provider",
		},
		{
			name:   "ProductionWithoutSecret",
			body:   "app:\n  environment: production\n",
			errMsg: "auth.jwt_secret",
		},
		{
			name:   "WatchWithoutDirectory",
			body:   "catalog:\n  watch: true\n",
			errMsg: "catalog.watch",
		},
		{
			name:   "BadPort",
			body:   "server:\n  port: 70000\n",
			errMsg: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
