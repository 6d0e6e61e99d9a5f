package models

import "time"

// SOSSession is one alert episode. CancelTime nil means the session is open.
type SOSSession struct {
	BaseModel
	UserID     string    `gorm:"type:varchar(36);not null;index:idx_sos_sessions_user_start,priority:1"`
	Message    *string   `gorm:"type:text"`
	StartTime  time.Time `gorm:"not null;index:idx_sos_sessions_user_start,priority:2"`
	CancelTime *time.Time
	LastKnown  GeoPoint `gorm:"embedded;embeddedPrefix:last_"`
}

func (SOSSession) TableName() string {
	return "sos_sessions"
}

// Open reports whether the session has not been cancelled.
func (s *SOSSession) Open() bool {
	return s.CancelTime == nil
}

// StatusView is the resolved SOS state of one user.
type StatusView struct {
	Active            bool       `json:"active" example:"true"`
	StartTime         *time.Time `json:"startTime"`
	CancelTime        *time.Time `json:"cancelTime"`
	LastKnownLocation *Location  `json:"lastKnownLocation"`
}

// NewStatusView resolves a session into its view; nil yields the inactive view.
func NewStatusView(s *SOSSession) StatusView {
	if s == nil {
		return StatusView{}
	}
	start := s.StartTime
	return StatusView{
		Active:            s.Open(),
		StartTime:         &start,
		CancelTime:        s.CancelTime,
		LastKnownLocation: s.LastKnown.Location(),
	}
}
