package models

import (
	"time"
)

// Portal roles (exact match with users.role)
const (
	RoleAdmin   = "admin"
	RoleTrustee = "trustee"
)

// User is a portal reviewer account (admin or trustee). Applicants do not
// have accounts; submission and tracking are public endpoints.
type User struct {
	UserID   int        `gorm:"primaryKey;autoIncrement;column:user_id" json:"user_id"`
	Username string     `gorm:"column:username;size:64;uniqueIndex" json:"username"`
	Password string     `gorm:"column:password" json:"-"`
	Role     string     `gorm:"column:role;size:16" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
