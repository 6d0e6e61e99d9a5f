package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// Migration modes.
const (
	MigrationAuto = "auto"
	MigrationDrop = "drop"
)

// OpenSOSIndex keeps at most one open SOS session per user.
const OpenSOSIndex = "idx_sos_sessions_open"

// AllModels lists every table in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Device{},
		&models.Breadcrumb{},
		&models.CheckIn{},
		&models.SOSSession{},
		&models.FamilyMember{},
		&models.UserSetting{},
		&models.Message{},
	}
}

// Migrate brings the schema up to date. Drop mode recreates every table.
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "", MigrationAuto:
		logger.Info("database migration: auto")
	case MigrationDrop:
		logger.Info("database migration: drop and recreate")
		models := AllModels()
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown migration mode %q", mode)
	}

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureOpenSOSIndex(db)
}

// EnsureOpenSOSIndex creates the partial unique index on dialects that
// support one. MySQL has no partial indexes and relies on the
// transactional activate path alone.
func EnsureOpenSOSIndex(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite", "postgres":
		sql := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON sos_sessions(user_id) WHERE cancel_time IS NULL", OpenSOSIndex)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", OpenSOSIndex, err)
		}
	default:
		logger.Warning("database dialect %s has no partial indexes; %s skipped", db.Dialector.Name(), OpenSOSIndex)
	}
	return nil
}
