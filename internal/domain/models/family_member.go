package models

import "time"

// FamilyMember is a contact the user shares safety status with.
type FamilyMember struct {
	BaseModel
	UserID       string  `gorm:"type:varchar(36);not null;index"`
	DisplayName  string  `gorm:"type:varchar(255);not null"`
	Status       *string `gorm:"type:varchar(50)"`
	LastSeenTime *time.Time
}

func (FamilyMember) TableName() string {
	return "family_members"
}
