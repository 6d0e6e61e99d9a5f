package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "auto", cfg.DBMigrationMode)
	assert.Equal(t, []string{"http://localhost:8000", "http://127.0.0.1:8000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "1.2.3", cfg.FirmwareLatestVersion)
	assert.True(t, cfg.SeedDemoUser)
	assert.False(t, cfg.MQTTEnabled)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Contains(t, cfg.GetDSN(), "trailguard.db")
}

func TestLoadConfigPrefersEnvTypePrefix(t *testing.T) {
	t.Setenv("ENV_TYPE", "server")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("MQTT_ENABLED", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "SERVER", cfg.EnvType)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.MQTTEnabled)
	assert.Equal(t, 100, cfg.DBMaxOpenConns)
}

func TestLoadConfigRequiresServerDatabaseParts(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("DB_DRIVER", "postgres")

	assert.Panics(t, func() { LoadConfig() })

	t.Setenv("LOCAL_DB_HOST", "db")
	t.Setenv("LOCAL_DB_USER", "tg")
	t.Setenv("LOCAL_DB_PASSWORD", "secret")
	t.Setenv("LOCAL_DB_NAME", "trailguard")

	cfg := LoadConfig()
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "host=db user=tg password=secret dbname=trailguard port=5432 sslmode=disable TimeZone=UTC", cfg.GetDSN())
}

func TestGetDSNUsesDatabaseURL(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DatabaseURL: "u:p@tcp(h:3306)/d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d", cfg.GetDSN())
	assert.Equal(t, "localhost:6379", (&Config{RedisHost: "localhost", RedisPort: "6379"}).GetRedisAddr())
}
