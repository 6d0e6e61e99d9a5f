package models

// DemoUserID is seeded at startup so the web client has an account to post to.
const DemoUserID = "11111111-1111-1111-1111-111111111111"

// User owns every other resource.
type User struct {
	BaseModel
	Email       *string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	DisplayName *string `gorm:"type:varchar(255)" json:"displayName"`
}

func (User) TableName() string {
	return "users"
}
