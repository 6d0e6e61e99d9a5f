package models

import "time"

// Breadcrumb is one recorded position of a device.
type Breadcrumb struct {
	BaseModel
	DeviceID       string    `gorm:"type:varchar(36);not null;index:idx_breadcrumbs_device_recorded,priority:1"`
	RecordedAt     time.Time `gorm:"not null;index:idx_breadcrumbs_device_recorded,priority:2"`
	Lat            float64   `gorm:"not null"`
	Lng            float64   `gorm:"not null"`
	AccuracyMeters *float64
}

func (Breadcrumb) TableName() string {
	return "breadcrumbs"
}

// LatLng is the breadcrumb position on the wire.
type LatLng struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90" example:"10.5"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180" example:"20.25"`
}

// BreadcrumbInput is one breadcrumb as submitted.
type BreadcrumbInput struct {
	Position       *LatLng    `json:"position" binding:"required"`
	AccuracyMeters *float64   `json:"accuracyMeters" binding:"omitempty,min=0"`
	RecordTime     *time.Time `json:"recordTime"`
}
