// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role values for User.Role.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is the canonical, provider-independent identity record.
// Profile fields that the SSO portal may or may not report are pointers so
// that "absent" stays distinguishable from a legitimate zero value.
type User struct {
	// ID is a stable char(36) identifier. It is assigned once, on the first
	// successful authentication, and never changes afterwards.
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Name is the display name reported by the SSO portal, if any.
	Name *string `gorm:"size:100" json:"name"`

	// Major and Year are optional profile attributes from the portal.
	Major *string `gorm:"size:200" json:"major"`
	Year  *int    `json:"year"`

	// Role is either "student" or "admin".
	Role string `gorm:"size:20;not null;default:student" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the table name aligned with the shared campus schema.
func (User) TableName() string { return "core_users" }
