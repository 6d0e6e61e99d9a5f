package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/fieldmask"
	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
)

// DeviceMask is the update engine over the device field set.
var DeviceMask = fieldmask.New[models.DeviceField, models.Device, models.DevicePayload](
	func(d *models.Device, now time.Time) { d.UpdateTime = now },
).
	Field(models.DeviceFieldBatteryPercent, func(d *models.Device, p *models.DevicePayload) bool {
		return fieldmask.AssignPtr(&d.BatteryPercent, p.BatteryPercent)
	}).
	Field(models.DeviceFieldSolar, func(d *models.Device, p *models.DevicePayload) bool {
		return fieldmask.Assign(&d.Solar, p.Solar)
	}).
	Field(models.DeviceFieldConnectionState, func(d *models.Device, p *models.DevicePayload) bool {
		return fieldmask.Assign(&d.ConnectionState, p.ConnectionState)
	}).
	Field(models.DeviceFieldFirmwareVersion, func(d *models.Device, p *models.DevicePayload) bool {
		return fieldmask.AssignPtr(&d.FirmwareVersion, p.FirmwareVersion)
	}).
	Field(models.DeviceFieldLastSeenTime, func(d *models.Device, p *models.DevicePayload) bool {
		if p.LastSeenTime == nil {
			return false
		}
		t := p.LastSeenTime.UTC()
		d.LastSeenTime = &t
		return true
	}).
	Field(models.DeviceFieldLocation, func(d *models.Device, p *models.DevicePayload) bool {
		if !p.Location.Complete() {
			return false
		}
		d.GeoPoint.SetLocation(p.Location.Location())
		return true
	})

// InterfaceDeviceService manages the trackers of a user.
type InterfaceDeviceService interface {
	Pair(ctx context.Context, userID string, in PairDeviceInput) (*models.Device, error)
	List(ctx context.Context, userID string, pageSize int) ([]models.Device, error)
	Get(ctx context.Context, userID, deviceID string) (*models.Device, error)
	Patch(ctx context.Context, userID, deviceID string, payload *models.DevicePayload, updateMask string) (*models.Device, error)
	CheckFirmware(ctx context.Context, userID, deviceID string) (*models.FirmwareInfo, error)
}

// PairDeviceInput is the body of a pairing request.
type PairDeviceInput struct {
	PairingCode string                `json:"pairingCode" example:"ABCD-1234"`
	Device      *models.DevicePayload `json:"device"`
}

// DeviceService provides device operations
type DeviceService struct {
	DB     *gorm.DB
	Config *config.Config
	Now    func() time.Time
}

// NewDeviceService creates the device service
func NewDeviceService(db *gorm.DB, cfg *config.Config) InterfaceDeviceService {
	return &DeviceService{
		DB:     db,
		Config: cfg,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// findOwnedDevice loads deviceID only if it belongs to userID.
func findOwnedDevice(tx *gorm.DB, userID, deviceID string) (*models.Device, error) {
	var device models.Device
	err := tx.Where("id = ? AND user_id = ?", deviceID, userID).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// 1 Pair registers a tracker under a pairing code
func (s *DeviceService) Pair(ctx context.Context, userID string, in PairDeviceInput) (*models.Device, error) {
	code := strings.TrimSpace(in.PairingCode)
	if n := utf8.RuneCountInString(code); n < 4 || n > 64 {
		return nil, ErrInvalidPairingCode
	}
	if in.Device != nil && in.Device.Location != nil && !in.Device.Location.Complete() {
		return nil, ErrIncompleteLocation
	}

	now := s.Now().UTC()
	device := &models.Device{
		UserID:          userID,
		ConnectionState: models.ConnectionStateOffline,
		PairingCode:     &code,
		PairedAt:        &now,
	}
	DeviceMask.Apply(device, in.Device, fieldmask.Mask[models.DeviceField]{}, now)

	if err := s.DB.WithContext(ctx).Create(device).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDeviceAlreadyExist
		}
		return nil, err
	}
	return device, nil
}

// 2 List returns the newest devices first
func (s *DeviceService) List(ctx context.Context, userID string, pageSize int) ([]models.Device, error) {
	devices := []models.Device{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_time DESC").
		Limit(pageSize).
		Find(&devices).Error
	return devices, err
}

// 3 Get loads one device of the user
func (s *DeviceService) Get(ctx context.Context, userID, deviceID string) (*models.Device, error) {
	return findOwnedDevice(s.DB.WithContext(ctx), userID, deviceID)
}

// 4 Patch applies a masked partial update
func (s *DeviceService) Patch(ctx context.Context, userID, deviceID string, payload *models.DevicePayload, updateMask string) (*models.Device, error) {
	var device *models.Device
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if device, err = findOwnedDevice(tx, userID, deviceID); err != nil {
			return err
		}
		// a missing device is reported before any payload problem
		mask, err := DeviceMask.ParseMask(updateMask)
		if err != nil {
			return err
		}
		if payload != nil && payload.Location != nil && !payload.Location.Complete() {
			return ErrIncompleteLocation
		}
		DeviceMask.Apply(device, payload, mask, s.Now().UTC())
		return tx.Save(device).Error
	})
	if err != nil {
		return nil, err
	}
	return device, nil
}

// 5 CheckFirmware compares the device firmware with the published release
func (s *DeviceService) CheckFirmware(ctx context.Context, userID, deviceID string) (*models.FirmwareInfo, error) {
	device, err := findOwnedDevice(s.DB.WithContext(ctx), userID, deviceID)
	if err != nil {
		return nil, err
	}

	current := "0.0.0"
	if device.FirmwareVersion != nil && *device.FirmwareVersion != "" {
		current = *device.FirmwareVersion
	}
	info := &models.FirmwareInfo{
		CurrentVersion:  current,
		LatestVersion:   s.Config.FirmwareLatestVersion,
		UpdateAvailable: current != s.Config.FirmwareLatestVersion,
	}
	if info.UpdateAvailable && s.Config.FirmwareReleaseNotes != "" {
		notes := s.Config.FirmwareReleaseNotes
		info.ReleaseNotes = &notes
	}
	return info, nil
}
