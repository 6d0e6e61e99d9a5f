package models

// Message is a free-text note a user leaves, optionally tied to a device.
type Message struct {
	BaseModel
	UserID   string  `gorm:"type:varchar(36);not null;index"`
	DeviceID *string `gorm:"type:varchar(36)"`
	Text     string  `gorm:"type:text;not null"`
	GeoPoint `gorm:"embedded"`
}

func (Message) TableName() string {
	return "messages"
}
