package models

import "time"

// ConnectionState is the last reported link state of a tracker.
type ConnectionState string

const (
	ConnectionStateOnline  ConnectionState = "ONLINE"
	ConnectionStateOffline ConnectionState = "OFFLINE"
)

// Valid reports whether s is a known state.
func (s ConnectionState) Valid() bool {
	return s == ConnectionStateOnline || s == ConnectionStateOffline
}

// Device is a tracker paired to one user.
type Device struct {
	BaseModel
	UserID          string          `gorm:"type:varchar(36);not null;index" json:"-"`
	Name            *string         `gorm:"type:varchar(100)" json:"displayName"`
	BatteryPercent  *int            `json:"batteryPercent"`
	Solar           bool            `gorm:"not null" json:"solar"`
	ConnectionState ConnectionState `gorm:"type:varchar(20);not null;default:'OFFLINE'" json:"connectionState"`
	FirmwareVersion *string         `gorm:"type:varchar(50)" json:"firmwareVersion"`
	LastSeenTime    *time.Time      `json:"lastSeenTime"`
	GeoPoint        `gorm:"embedded"`
	PairingCode     *string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	PairedAt        *time.Time `json:"pairedAt"`
	UpdateTime      time.Time  `json:"updateTime"`
}

func (Device) TableName() string {
	return "devices"
}

// DeviceField names a device attribute that PATCH may change.
type DeviceField string

const (
	DeviceFieldBatteryPercent  DeviceField = "batteryPercent"
	DeviceFieldSolar           DeviceField = "solar"
	DeviceFieldConnectionState DeviceField = "connectionState"
	DeviceFieldFirmwareVersion DeviceField = "firmwareVersion"
	DeviceFieldLastSeenTime    DeviceField = "lastSeenTime"
	DeviceFieldLocation        DeviceField = "location"
)

// DevicePayload carries the candidate values of a device update.
// A nil field was not supplied.
type DevicePayload struct {
	BatteryPercent  *int             `json:"batteryPercent" binding:"omitempty,min=0,max=100" example:"88"`
	Solar           *bool            `json:"solar" example:"true"`
	ConnectionState *ConnectionState `json:"connectionState" binding:"omitempty,oneof=ONLINE OFFLINE" example:"ONLINE"`
	FirmwareVersion *string          `json:"firmwareVersion" binding:"omitempty,max=50" example:"1.2.0"`
	LastSeenTime    *time.Time       `json:"lastSeenTime"`
	Location        *LocationInput   `json:"location"`
}

// FirmwareInfo is the result of a firmware check.
type FirmwareInfo struct {
	CurrentVersion  string  `json:"currentVersion" example:"1.2.0"`
	LatestVersion   string  `json:"latestVersion" example:"1.2.3"`
	UpdateAvailable bool    `json:"updateAvailable" example:"true"`
	ReleaseNotes    *string `json:"releaseNotes" example:"Improved GPS accuracy and battery reporting."`
}
