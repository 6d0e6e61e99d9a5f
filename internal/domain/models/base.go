package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the uuid primary key and creation time shared by all rows.
type BaseModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreateTime time.Time `gorm:"autoCreateTime;index" json:"createTime"`
}

// BeforeCreate assigns a random uuid when the caller did not.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Location is the wire form of a position fix.
type Location struct {
	Lat            float64  `json:"lat" example:"47.6062"`
	Lng            float64  `json:"lng" example:"-122.3321"`
	AccuracyMeters *float64 `json:"accuracyMeters" example:"5"`
}

// LocationInput is a position fix as submitted; any part may be missing.
type LocationInput struct {
	Lat            *float64 `json:"lat" binding:"omitempty,min=-90,max=90" example:"47.6062"`
	Lng            *float64 `json:"lng" binding:"omitempty,min=-180,max=180" example:"-122.3321"`
	AccuracyMeters *float64 `json:"accuracyMeters" binding:"omitempty,min=0" example:"5"`
}

// Complete reports whether both coordinates are present.
func (in *LocationInput) Complete() bool {
	return in != nil && in.Lat != nil && in.Lng != nil
}

// Location returns the fix, or nil unless both coordinates are present.
func (in *LocationInput) Location() *Location {
	if !in.Complete() {
		return nil
	}
	return &Location{Lat: *in.Lat, Lng: *in.Lng, AccuracyMeters: in.AccuracyMeters}
}

// GeoPoint stores an optional fix as three nullable columns.
type GeoPoint struct {
	Lat            *float64
	Lng            *float64
	AccuracyMeters *float64
}

// Location returns nil unless both coordinates are stored.
func (g GeoPoint) Location() *Location {
	if g.Lat == nil || g.Lng == nil {
		return nil
	}
	return &Location{Lat: *g.Lat, Lng: *g.Lng, AccuracyMeters: g.AccuracyMeters}
}

// SetLocation overwrites all three columns together.
func (g *GeoPoint) SetLocation(loc *Location) {
	if loc == nil {
		g.Lat, g.Lng, g.AccuracyMeters = nil, nil, nil
		return
	}
	lat, lng := loc.Lat, loc.Lng
	g.Lat, g.Lng = &lat, &lng
	if loc.AccuracyMeters != nil {
		acc := *loc.AccuracyMeters
		g.AccuracyMeters = &acc
	} else {
		g.AccuracyMeters = nil
	}
}
