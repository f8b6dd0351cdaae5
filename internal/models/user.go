package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a member of the site. Admins are flagged users rather than a
// separate staff table; TOTP fields only matter for admin accounts.
type User struct {
	Base
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100)" json:"last_name"`
	CountryID    *uuid.UUID `gorm:"type:uuid;index" json:"country_id,omitempty"`
	Country      *Country   `gorm:"foreignKey:CountryID" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	IsAdmin      bool       `gorm:"default:false" json:"is_admin"`
	TOTPSecret   string     `gorm:"type:varchar(64)" json:"-"`
	TOTPEnabled  bool       `gorm:"default:false" json:"totp_enabled"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (User) TableName() string { return "users" }
