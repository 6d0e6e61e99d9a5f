package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// InterfaceUserService reads user accounts.
type InterfaceUserService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
	EnsureDemoUser(ctx context.Context) error
}

// UserService provides user operations
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService creates the user service
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{DB: db, Config: cfg}
}

// 1 Get loads a user by id
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// 2 Exists reports whether userID is a known user
func (s *UserService) Exists(ctx context.Context, userID string) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&n).Error
	return n > 0, err
}

// 3 EnsureDemoUser seeds the fixed demo account; running it twice is harmless
func (s *UserService) EnsureDemoUser(ctx context.Context) error {
	email, name := "demo@example.com", "Demo User"
	demo := &models.User{
		BaseModel:   models.BaseModel{ID: models.DemoUserID},
		Email:       &email,
		DisplayName: &name,
	}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(demo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logger.Info("seeded demo user %s", models.DemoUserID)
	}
	return nil
}
