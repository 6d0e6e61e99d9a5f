package models

// CheckIn is a user-submitted "I'm here" report.
type CheckIn struct {
	BaseModel
	UserID   string  `gorm:"type:varchar(36);not null;index"`
	DeviceID *string `gorm:"type:varchar(36)"`
	Type     string  `gorm:"type:varchar(50);not null"`
	Message  *string `gorm:"type:text"`
	GeoPoint `gorm:"embedded"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}
