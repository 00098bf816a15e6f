package auth

import (
	"time"
)

// Admin roles. Super manages everything including other admins; local and
// user are limited to the registration desk pages.
const (
	RoleSuper = "super"
	RoleLocal = "local"
	RoleUser  = "user"
)

type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"not null;default:'user'" json:"role"`
	IsActive     bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func IsValidRole(role string) bool {
	return role == RoleSuper || role == RoleLocal || role == RoleUser
}
