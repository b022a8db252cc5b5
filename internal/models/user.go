package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint      `gorm:"primaryKey"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	LastName       string    `gorm:"type:varchar(100)"` // empty for company accounts
	Email          string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash   string    `gorm:"type:varchar(255)"`
	Role           string    `gorm:"type:varchar(20);default:'user'"`
	IsBanned       bool      `gorm:"default:false;not null"`
	Headline       string    `gorm:"type:varchar(255);default:'New Member at ProNetwork'"`
	Location       string    `gorm:"type:varchar(255)"`
	About          string    `gorm:"type:text"`
	ProfilePicture string    `gorm:"type:varchar(500)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// User role constants
const (
	RoleUser    = "user"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	validRoles := map[string]bool{
		RoleUser:    true,
		RoleCompany: true,
		RoleAdmin:   true,
	}
	if !validRoles[u.Role] {
		return gorm.ErrInvalidData
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserConnection is one row of the denormalized mutual-connection set.
// The connection ledger is authoritative for accepted status; these rows are
// a cached projection for fast membership checks, kept in sync by the
// connection service.
type UserConnection struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index:idx_user_connection,unique"`
	ConnectionID uint      `gorm:"not null;index:idx_user_connection,unique"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (UserConnection) TableName() string {
	return "user_connections"
}

// DisplayName returns the name shown in notification feeds.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
