// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"github.com/your-org/workshop-backend/internal/domain/workshop"
	"gorm.io/gorm"
)

// Role represents a user's role inside the workshop
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleMechanic     Role = "mechanic"
	RoleReceptionist Role = "receptionist"
)

// User represents an operator of a workshop account
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	WorkshopID    uint           `gorm:"not null;index" json:"workshop_id"`
	Email         string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password      string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FirstName     string         `gorm:"size:100" json:"first_name"`
	LastName      string         `gorm:"size:100" json:"last_name"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Role          Role           `gorm:"size:20;default:'mechanic'" json:"role"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	LastLoginAt   *time.Time     `json:"last_login_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Workshop workshop.Workshop `gorm:"foreignKey:WorkshopID" json:"workshop,omitempty"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = strings.ToLower(u.Email)
	return nil
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
