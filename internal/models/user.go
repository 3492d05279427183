package models

// User is a registered principal. Everywhere else in the system users are
// referred to only by their opaque UUID; household membership is tracked
// separately per household.
type User struct {
	Base
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// SHA-256 hash of the current refresh token; empty when logged out.
	RefreshTokenHash string `json:"-"`
}
