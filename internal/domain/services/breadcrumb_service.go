package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
)

// MaxBreadcrumbBatch caps one batchCreate call.
const MaxBreadcrumbBatch = 5000

// insertChunk is how many rows go into one INSERT statement.
const insertChunk = 500

// InterfaceBreadcrumbService records device tracks.
type InterfaceBreadcrumbService interface {
	List(ctx context.Context, userID, deviceID string, pageSize int) ([]models.Breadcrumb, error)
	Create(ctx context.Context, userID, deviceID string, in models.BreadcrumbInput) (*models.Breadcrumb, error)
	BatchCreate(ctx context.Context, userID, deviceID string, in []models.BreadcrumbInput) (int, error)
}

// BreadcrumbService provides breadcrumb operations
type BreadcrumbService struct {
	DB     *gorm.DB
	Config *config.Config
	Now    func() time.Time
}

// NewBreadcrumbService creates the breadcrumb service
func NewBreadcrumbService(db *gorm.DB, cfg *config.Config) InterfaceBreadcrumbService {
	return &BreadcrumbService{
		DB:     db,
		Config: cfg,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *BreadcrumbService) toRow(deviceID string, in models.BreadcrumbInput, now time.Time) models.Breadcrumb {
	row := models.Breadcrumb{
		DeviceID:       deviceID,
		RecordedAt:     now,
		AccuracyMeters: in.AccuracyMeters,
	}
	if in.Position != nil {
		row.Lat, row.Lng = in.Position.Latitude, in.Position.Longitude
	}
	if in.RecordTime != nil {
		row.RecordedAt = in.RecordTime.UTC()
	}
	return row
}

// 1 List returns the most recently recorded breadcrumbs first
func (s *BreadcrumbService) List(ctx context.Context, userID, deviceID string, pageSize int) ([]models.Breadcrumb, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findOwnedDevice(db, userID, deviceID); err != nil {
		return nil, err
	}

	rows := []models.Breadcrumb{}
	err := db.Where("device_id = ?", deviceID).
		Order("recorded_at DESC").
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}

// 2 Create records one breadcrumb
func (s *BreadcrumbService) Create(ctx context.Context, userID, deviceID string, in models.BreadcrumbInput) (*models.Breadcrumb, error) {
	db := s.DB.WithContext(ctx)
	if _, err := findOwnedDevice(db, userID, deviceID); err != nil {
		return nil, err
	}

	row := s.toRow(deviceID, in, s.Now().UTC())
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// 3 BatchCreate inserts every breadcrumb or none
func (s *BreadcrumbService) BatchCreate(ctx context.Context, userID, deviceID string, in []models.BreadcrumbInput) (int, error) {
	if len(in) > MaxBreadcrumbBatch {
		return 0, ErrTooManyBreadcrumbs
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findOwnedDevice(tx, userID, deviceID); err != nil {
			return err
		}
		if len(in) == 0 {
			return nil
		}
		now := s.Now().UTC()
		rows := make([]models.Breadcrumb, 0, len(in))
		for _, item := range in {
			rows = append(rows, s.toRow(deviceID, item, now))
		}
		return tx.CreateInBatches(rows, insertChunk).Error
	})
	if err != nil {
		return 0, err
	}
	return len(in), nil
}
