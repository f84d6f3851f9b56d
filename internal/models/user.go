package models

import (
	"time"
)

// User represents an authenticated customer or administrator.
type User struct {
	BaseModel
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Phone        string `gorm:"index" json:"phone"`
	DisplayName  string `json:"display_name"`
	CompanyName  string `json:"company_name"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"is_verified"`
	IsAdmin      bool   `json:"is_admin"`

	Campaigns []Campaign `json:"campaigns,omitempty"`
}

// SMSVerification keeps track of OTP codes sent to users.
type SMSVerification struct {
	BaseModel
	Phone     string     `gorm:"index" json:"phone"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Verified  bool       `json:"verified"`
	UsedAt    *time.Time `json:"used_at"`
}
