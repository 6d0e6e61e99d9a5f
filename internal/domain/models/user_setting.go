package models

import "time"

// UserSetting holds the per-user safety switches. One row per user.
type UserSetting struct {
	UserID               string    `gorm:"type:varchar(36);primaryKey"`
	AutoAlerts           bool      `gorm:"not null"`
	NotifyContacts       bool      `gorm:"not null"`
	SOSAutoCall          bool      `gorm:"column:sos_auto_call;not null"`
	GeofenceRadiusMeters int       `gorm:"not null"`
	UpdateTime           time.Time `gorm:"not null"`
}

func (UserSetting) TableName() string {
	return "user_settings"
}

// SettingsField names a setting that PATCH may change.
type SettingsField string

const (
	SettingsFieldAutoAlerts           SettingsField = "autoAlerts"
	SettingsFieldNotifyContacts       SettingsField = "notifyContacts"
	SettingsFieldSOSAutoCall          SettingsField = "sosAutoCall"
	SettingsFieldGeofenceRadiusMeters SettingsField = "geofenceRadiusMeters"
)

// SettingsPayload carries the candidate values of a settings update.
type SettingsPayload struct {
	AutoAlerts           *bool `json:"autoAlerts" example:"true"`
	NotifyContacts       *bool `json:"notifyContacts" example:"false"`
	SOSAutoCall          *bool `json:"sosAutoCall" example:"false"`
	GeofenceRadiusMeters *int  `json:"geofenceRadiusMeters" binding:"omitempty,min=0" example:"250"`
}
