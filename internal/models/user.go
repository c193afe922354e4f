package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a learner account
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`              // primary key
	Email              string         `gorm:"uniqueIndex;not null" json:"email"` // login email
	PasswordHash       string         `gorm:"not null" json:"-"`                 // bcrypt hash, never serialized
	Name               string         `gorm:"default:''" json:"name"`            // display name
	Phone              string         `gorm:"index" json:"phone"`                // contact number
	Status             string         `gorm:"default:'active'" json:"status"`    // account status
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`       // bumped to invalidate issued tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                    // tokens issued earlier are rejected
	LastLoginAt        *time.Time     `json:"last_login_at"`                     // last successful login
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`           // created
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`           // updated
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete
}

// TableName sets the table name
func (User) TableName() string {
	return "users"
}
