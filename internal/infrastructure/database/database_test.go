package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
)

func openMemory(t *testing.T) *ConnectionPool {
	t.Helper()
	pool, err := Open(Options{
		Driver:       DriverSQLite,
		DSN:          "file::memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     gormlogger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func TestMigrateCreatesTablesAndOpenIndex(t *testing.T) {
	pool := openMemory(t)
	require.NoError(t, Migrate(pool.DB, MigrationAuto))

	for _, table := range []string{"users", "devices", "breadcrumbs", "check_ins", "sos_sessions", "family_members", "user_settings", "messages"} {
		assert.True(t, pool.DB.Migrator().HasTable(table), table)
	}
	assert.True(t, pool.DB.Migrator().HasIndex(&models.SOSSession{}, OpenSOSIndex))
}

func TestOpenIndexRejectsSecondOpenSession(t *testing.T) {
	pool := openMemory(t)
	require.NoError(t, Migrate(pool.DB, MigrationAuto))

	now := time.Now().UTC()
	require.NoError(t, pool.DB.Create(&models.SOSSession{UserID: "u1", StartTime: now}).Error)
	err := pool.DB.Create(&models.SOSSession{UserID: "u1", StartTime: now.Add(time.Second)}).Error
	assert.Error(t, err)

	cancelled := now.Add(time.Minute)
	require.NoError(t, pool.DB.Create(&models.SOSSession{UserID: "u1", StartTime: now, CancelTime: &cancelled}).Error)
	require.NoError(t, pool.DB.Create(&models.SOSSession{UserID: "u2", StartTime: now}).Error)
}

func TestMigrateDropModeRecreates(t *testing.T) {
	pool := openMemory(t)
	require.NoError(t, Migrate(pool.DB, MigrationAuto))
	require.NoError(t, pool.DB.Create(&models.User{}).Error)

	require.NoError(t, Migrate(pool.DB, MigrationDrop))

	var n int64
	require.NoError(t, pool.DB.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestMigrateUnknownMode(t *testing.T) {
	pool := openMemory(t)
	assert.Error(t, Migrate(pool.DB, "sideways"))
}

func TestInfoReportsHealthyConnection(t *testing.T) {
	pool := openMemory(t)
	info := pool.Info(context.Background())
	assert.True(t, info.OK)
	assert.Nil(t, info.Error)
	assert.Equal(t, "sqlite", info.Backend)
	assert.Equal(t, DriverSQLite, info.Driver)
	assert.Equal(t, "file::memory:", info.URL)
}

func TestInfoAfterCloseReportsError(t *testing.T) {
	pool := openMemory(t)
	require.NoError(t, pool.Close())
	info := pool.Info(context.Background())
	assert.False(t, info.OK)
	require.NotNil(t, info.Error)
}

func TestStats(t *testing.T) {
	stats, err := openMemory(t).Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["max_open_connections"])
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMaskDSN(t *testing.T) {
	cases := map[string]string{
		"postgres://trail:secret@db:5432/tg?sslmode=disable":     "postgres://trail:***@db:5432/tg?sslmode=disable",
		"host=db user=trail password=secret dbname=tg port=5432": "host=db user=trail password=*** dbname=tg port=5432",
		"trail:secret@tcp(db:3306)/tg?parseTime=True":            "trail:***@tcp(db:3306)/tg?parseTime=True",
		"file:trailguard.db?_pragma=foreign_keys(1)":             "file:trailguard.db?_pragma=foreign_keys(1)",
		"postgres://trail@db:5432/tg":                            "postgres://trail@db:5432/tg",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskDSN(in), in)
	}
}
