package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
)

// InterfaceCheckInService records "I'm here" reports.
type InterfaceCheckInService interface {
	List(ctx context.Context, userID string, pageSize int) ([]models.CheckIn, error)
	Create(ctx context.Context, userID string, in CheckInInput) (*models.CheckIn, error)
}

// CheckInInput is a check-in as submitted.
type CheckInInput struct {
	Type     string                `json:"type" binding:"required,max=50" example:"ok"`
	Message  *string               `json:"message" binding:"omitempty,max=2000" example:"Reached the summit"`
	DeviceID *string               `json:"deviceId" example:"5f0c1e0a-4d1b-4d8e-9a55-2f6b0f3f8f11"`
	Location *models.LocationInput `json:"location"`
}

// CheckInService provides check-in operations
type CheckInService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCheckInService creates the check-in service
func NewCheckInService(db *gorm.DB, cfg *config.Config) InterfaceCheckInService {
	return &CheckInService{
		DB:     db,
		Config: cfg,
	}
}

// 1 List returns the newest check-ins first
func (s *CheckInService) List(ctx context.Context, userID string, pageSize int) ([]models.CheckIn, error) {
	rows := []models.CheckIn{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_time DESC").
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}

// 2 Create stores a check-in; a referenced device must belong to the user
func (s *CheckInService) Create(ctx context.Context, userID string, in CheckInInput) (*models.CheckIn, error) {
	if in.Location != nil && !in.Location.Complete() {
		return nil, ErrIncompleteLocation
	}

	db := s.DB.WithContext(ctx)
	if in.DeviceID != nil {
		if _, err := findOwnedDevice(db, userID, *in.DeviceID); err != nil {
			return nil, err
		}
	}

	row := &models.CheckIn{
		UserID:   userID,
		DeviceID: in.DeviceID,
		Type:     in.Type,
		Message:  in.Message,
	}
	row.GeoPoint.SetLocation(in.Location.Location())
	if err := db.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
