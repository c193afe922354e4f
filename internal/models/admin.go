package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a back-office account
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                         // primary key
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`         // admin login
	PasswordHash       string         `gorm:"not null" json:"-"`                            // bcrypt hash, never serialized
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // bumped to invalidate issued tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // tokens issued earlier are rejected
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // super admins skip RBAC checks
	LastLoginAt        *time.Time     `json:"last_login_at"`                                // last successful login
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                      // created
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                               // soft delete
}

// TableName sets the table name
func (Admin) TableName() string {
	return "admins"
}
