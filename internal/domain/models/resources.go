package models

import (
	"fmt"
	"time"
)

// Resource names follow the users/{user}/{collection}/{id} layout.

func UserName(userID string) string {
	return "users/" + userID
}

func DeviceName(userID, deviceID string) string {
	return fmt.Sprintf("users/%s/devices/%s", userID, deviceID)
}

func BreadcrumbName(userID, deviceID, breadcrumbID string) string {
	return fmt.Sprintf("users/%s/devices/%s/breadcrumbs/%s", userID, deviceID, breadcrumbID)
}

func CheckInName(userID, checkInID string) string {
	return fmt.Sprintf("users/%s/checkIns/%s", userID, checkInID)
}

func FamilyMemberName(userID, memberID string) string {
	return fmt.Sprintf("users/%s/familyMembers/%s", userID, memberID)
}

func MessageName(userID, messageID string) string {
	return fmt.Sprintf("users/%s/messages/%s", userID, messageID)
}

func SettingsName(userID string) string {
	return "users/" + userID + "/settings"
}

func SOSName(userID string) string {
	return "users/" + userID + "/sos"
}

// UserResource is the wire form of a User.
type UserResource struct {
	Name        string    `json:"name" example:"users/11111111-1111-1111-1111-111111111111"`
	Email       *string   `json:"email" example:"demo@example.com"`
	DisplayName *string   `json:"displayName" example:"Demo User"`
	CreateTime  time.Time `json:"createTime"`
}

func NewUserResource(u *User) UserResource {
	return UserResource{
		Name:        UserName(u.ID),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreateTime:  u.CreateTime,
	}
}

// DeviceResource is the wire form of a Device.
type DeviceResource struct {
	Name            string          `json:"name" example:"users/u1/devices/d1"`
	DisplayName     *string         `json:"displayName"`
	BatteryPercent  *int            `json:"batteryPercent" example:"88"`
	Solar           bool            `json:"solar"`
	ConnectionState ConnectionState `json:"connectionState" example:"ONLINE"`
	FirmwareVersion *string         `json:"firmwareVersion" example:"1.2.0"`
	LastSeenTime    *time.Time      `json:"lastSeenTime"`
	Location        *Location       `json:"location"`
	PairedAt        *time.Time      `json:"pairedAt"`
	CreateTime      time.Time       `json:"createTime"`
	UpdateTime      time.Time       `json:"updateTime"`
}

func NewDeviceResource(d *Device) DeviceResource {
	return DeviceResource{
		Name:            DeviceName(d.UserID, d.ID),
		DisplayName:     d.Name,
		BatteryPercent:  d.BatteryPercent,
		Solar:           d.Solar,
		ConnectionState: d.ConnectionState,
		FirmwareVersion: d.FirmwareVersion,
		LastSeenTime:    d.LastSeenTime,
		Location:        d.GeoPoint.Location(),
		PairedAt:        d.PairedAt,
		CreateTime:      d.CreateTime,
		UpdateTime:      d.UpdateTime,
	}
}

// BreadcrumbResource is the wire form of a Breadcrumb.
type BreadcrumbResource struct {
	Name           string    `json:"name"`
	Position       LatLng    `json:"position"`
	AccuracyMeters *float64  `json:"accuracyMeters"`
	RecordTime     time.Time `json:"recordTime"`
	CreateTime     time.Time `json:"createTime"`
}

func NewBreadcrumbResource(userID string, b *Breadcrumb) BreadcrumbResource {
	return BreadcrumbResource{
		Name:           BreadcrumbName(userID, b.DeviceID, b.ID),
		Position:       LatLng{Latitude: b.Lat, Longitude: b.Lng},
		AccuracyMeters: b.AccuracyMeters,
		RecordTime:     b.RecordedAt,
		CreateTime:     b.CreateTime,
	}
}

// CheckInResource is the wire form of a CheckIn.
type CheckInResource struct {
	Name       string    `json:"name"`
	Type       string    `json:"type" example:"ok"`
	Message    *string   `json:"message" example:"Reached the summit"`
	DeviceID   *string   `json:"deviceId"`
	Location   *Location `json:"location"`
	CreateTime time.Time `json:"createTime"`
}

func NewCheckInResource(ci *CheckIn) CheckInResource {
	return CheckInResource{
		Name:       CheckInName(ci.UserID, ci.ID),
		Type:       ci.Type,
		Message:    ci.Message,
		DeviceID:   ci.DeviceID,
		Location:   ci.GeoPoint.Location(),
		CreateTime: ci.CreateTime,
	}
}

// FamilyMemberResource is the wire form of a FamilyMember.
type FamilyMemberResource struct {
	Name         string     `json:"name"`
	DisplayName  string     `json:"displayName" example:"Alice"`
	Status       *string    `json:"status" example:"SAFE"`
	LastSeenTime *time.Time `json:"lastSeenTime"`
	CreateTime   time.Time  `json:"createTime"`
}

func NewFamilyMemberResource(m *FamilyMember) FamilyMemberResource {
	return FamilyMemberResource{
		Name:         FamilyMemberName(m.UserID, m.ID),
		DisplayName:  m.DisplayName,
		Status:       m.Status,
		LastSeenTime: m.LastSeenTime,
		CreateTime:   m.CreateTime,
	}
}

// MessageResource is the wire form of a Message.
type MessageResource struct {
	Name       string    `json:"name"`
	Text       string    `json:"text" example:"Camping at the north lake tonight"`
	DeviceID   *string   `json:"deviceId"`
	Location   *Location `json:"location"`
	CreateTime time.Time `json:"createTime"`
}

func NewMessageResource(m *Message) MessageResource {
	return MessageResource{
		Name:       MessageName(m.UserID, m.ID),
		Text:       m.Text,
		DeviceID:   m.DeviceID,
		Location:   m.GeoPoint.Location(),
		CreateTime: m.CreateTime,
	}
}

// SettingsResource is the wire form of a UserSetting.
type SettingsResource struct {
	Name                 string    `json:"name" example:"users/u1/settings"`
	AutoAlerts           bool      `json:"autoAlerts"`
	NotifyContacts       bool      `json:"notifyContacts"`
	SOSAutoCall          bool      `json:"sosAutoCall"`
	GeofenceRadiusMeters int       `json:"geofenceRadiusMeters" example:"250"`
	UpdateTime           time.Time `json:"updateTime"`
}

func NewSettingsResource(s *UserSetting) SettingsResource {
	return SettingsResource{
		Name:                 SettingsName(s.UserID),
		AutoAlerts:           s.AutoAlerts,
		NotifyContacts:       s.NotifyContacts,
		SOSAutoCall:          s.SOSAutoCall,
		GeofenceRadiusMeters: s.GeofenceRadiusMeters,
		UpdateTime:           s.UpdateTime,
	}
}

// SOSResource is the wire form of a StatusView.
type SOSResource struct {
	Name string `json:"name" example:"users/u1/sos"`
	StatusView
}

func NewSOSResource(userID string, view StatusView) SOSResource {
	return SOSResource{Name: SOSName(userID), StatusView: view}
}
