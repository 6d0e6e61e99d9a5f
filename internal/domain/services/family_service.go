package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
)

// InterfaceFamilyService manages the family contacts of a user.
type InterfaceFamilyService interface {
	List(ctx context.Context, userID string) ([]models.FamilyMember, error)
	Create(ctx context.Context, userID string, in FamilyMemberInput) (*models.FamilyMember, error)
	Delete(ctx context.Context, userID, memberID string) error
}

// FamilyMemberInput is a family member as submitted.
type FamilyMemberInput struct {
	DisplayName  string     `json:"displayName" binding:"required,max=255" example:"Alice"`
	Status       *string    `json:"status" binding:"omitempty,max=50" example:"SAFE"`
	LastSeenTime *time.Time `json:"lastSeenTime" example:"2024-05-01T12:00:00Z"`
}

// FamilyService provides family member operations
type FamilyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFamilyService creates the family service
func NewFamilyService(db *gorm.DB, cfg *config.Config) InterfaceFamilyService {
	return &FamilyService{DB: db, Config: cfg}
}

// 1 List returns the newest contacts first
func (s *FamilyService) List(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	rows := []models.FamilyMember{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_time DESC").
		Find(&rows).Error
	return rows, err
}

// 2 Create adds a contact
func (s *FamilyService) Create(ctx context.Context, userID string, in FamilyMemberInput) (*models.FamilyMember, error) {
	row := &models.FamilyMember{
		UserID:      userID,
		DisplayName: in.DisplayName,
		Status:      in.Status,
	}
	if in.LastSeenTime != nil {
		t := in.LastSeenTime.UTC()
		row.LastSeenTime = &t
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// 3 Delete removes a contact of the user
func (s *FamilyService) Delete(ctx context.Context, userID, memberID string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", memberID, userID).
		Delete(&models.FamilyMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFamilyMemberNotFound
	}
	return nil
}
