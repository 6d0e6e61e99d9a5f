package services

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoshCLWren/TrailGuard/internal/domain/fieldmask"
	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// SettingsMask is the update engine over the settings field set.
var SettingsMask = fieldmask.New[models.SettingsField, models.UserSetting, models.SettingsPayload](
	func(s *models.UserSetting, now time.Time) { s.UpdateTime = now },
).
	Field(models.SettingsFieldAutoAlerts, func(s *models.UserSetting, p *models.SettingsPayload) bool {
		return fieldmask.Assign(&s.AutoAlerts, p.AutoAlerts)
	}).
	Field(models.SettingsFieldNotifyContacts, func(s *models.UserSetting, p *models.SettingsPayload) bool {
		return fieldmask.Assign(&s.NotifyContacts, p.NotifyContacts)
	}).
	Field(models.SettingsFieldSOSAutoCall, func(s *models.UserSetting, p *models.SettingsPayload) bool {
		return fieldmask.Assign(&s.SOSAutoCall, p.SOSAutoCall)
	}).
	Field(models.SettingsFieldGeofenceRadiusMeters, func(s *models.UserSetting, p *models.SettingsPayload) bool {
		return fieldmask.Assign(&s.GeofenceRadiusMeters, p.GeofenceRadiusMeters)
	})

// InterfaceSettingsService reads and updates the per-user settings row.
type InterfaceSettingsService interface {
	GetOrCreateDefault(ctx context.Context, userID string) (*models.UserSetting, error)
	Patch(ctx context.Context, userID string, payload *models.SettingsPayload, updateMask string) (*models.UserSetting, error)
}

// SettingsService provides settings operations
type SettingsService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceCacheService
	Now    func() time.Time
}

// NewSettingsService creates the settings service
func NewSettingsService(db *gorm.DB, cfg *config.Config, cache InterfaceCacheService) InterfaceSettingsService {
	return &SettingsService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

func settingsCacheKey(userID string) string {
	return "settings:" + userID
}

// ensureSettings returns the row, inserting the all-off default when absent.
// A concurrent insert of the same row is absorbed by the conflict clause.
func (s *SettingsService) ensureSettings(tx *gorm.DB, userID string) (*models.UserSetting, error) {
	row := models.UserSetting{UserID: userID, UpdateTime: s.Now().UTC()}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, err
	}
	var current models.UserSetting
	if err := tx.Where("user_id = ?", userID).First(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}

// 1 GetOrCreateDefault returns the settings, creating the default row once
func (s *SettingsService) GetOrCreateDefault(ctx context.Context, userID string) (*models.UserSetting, error) {
	var cached models.UserSetting
	if s.Cache != nil {
		if hit, err := s.Cache.Get(ctx, settingsCacheKey(userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	// reads never fill the cache; a concurrent Patch may have committed since
	return s.ensureSettings(s.DB.WithContext(ctx), userID)
}

// 2 Patch applies a masked partial update; update_time always advances
func (s *SettingsService) Patch(ctx context.Context, userID string, payload *models.SettingsPayload, updateMask string) (*models.UserSetting, error) {
	mask, err := SettingsMask.ParseMask(updateMask)
	if err != nil {
		return nil, err
	}

	var row *models.UserSetting
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if row, err = s.ensureSettings(tx, userID); err != nil {
			return err
		}
		SettingsMask.Apply(row, payload, mask, s.Now().UTC())
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		// inside the transaction so concurrent patches cache in commit order
		s.remember(ctx, row)
		return nil
	})
	if err != nil {
		if s.Cache != nil {
			_ = s.Cache.Delete(ctx, settingsCacheKey(userID))
		}
		return nil, err
	}
	return row, nil
}

func (s *SettingsService) remember(ctx context.Context, row *models.UserSetting) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, settingsCacheKey(row.UserID), row, 0); err != nil {
		logger.Warning("cache settings for user %s: %v", row.UserID, err)
	}
}
