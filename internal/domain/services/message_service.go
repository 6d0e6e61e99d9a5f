package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
)

// InterfaceMessageService stores free-text notes.
type InterfaceMessageService interface {
	List(ctx context.Context, userID string, pageSize int) ([]models.Message, error)
	Create(ctx context.Context, userID string, in MessageInput) (*models.Message, error)
}

// MessageInput is a message as submitted.
type MessageInput struct {
	Text     string                `json:"text" binding:"required,max=4000" example:"Camping at the north lake tonight"`
	DeviceID *string               `json:"deviceId"`
	Location *models.LocationInput `json:"location"`
}

// MessageService provides message operations
type MessageService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewMessageService creates the message service
func NewMessageService(db *gorm.DB, cfg *config.Config) InterfaceMessageService {
	return &MessageService{DB: db, Config: cfg}
}

// 1 List returns the newest messages first
func (s *MessageService) List(ctx context.Context, userID string, pageSize int) ([]models.Message, error) {
	rows := []models.Message{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_time DESC").
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}

// 2 Create stores a message
func (s *MessageService) Create(ctx context.Context, userID string, in MessageInput) (*models.Message, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyText
	}
	if in.Location != nil && !in.Location.Complete() {
		return nil, ErrIncompleteLocation
	}

	db := s.DB.WithContext(ctx)
	if in.DeviceID != nil {
		if _, err := findOwnedDevice(db, userID, *in.DeviceID); err != nil {
			return nil, err
		}
	}

	row := &models.Message{
		UserID:   userID,
		DeviceID: in.DeviceID,
		Text:     in.Text,
	}
	row.GeoPoint.SetLocation(in.Location.Location())
	if err := db.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
