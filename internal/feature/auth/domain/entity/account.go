package entity

import "time"

// ProviderLocal is the provider name for accounts authenticated against the
// locally cached credential (seed accounts and synchronized SSO accounts).
const ProviderLocal = "local"

// AuthAccount binds a provider-scoped credential to a User.
// The (Provider, ProviderUserID) pair is the natural key for every
// authentication attempt. RefreshToken is a single slot: each successful
// login overwrites it, and logout looks an account up by its value.
type AuthAccount struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;not null;index:idx_auth_user" json:"userId"`

	Provider       string `gorm:"size:50;not null;uniqueIndex:uk_provider_user" json:"provider"`
	ProviderUserID string `gorm:"size:255;not null;uniqueIndex:uk_provider_user" json:"providerUserId"`

	// PasswordHash is the bcrypt hash used by the fast local path. It is nil
	// until the first successful SSO login re-hashes the secret locally.
	PasswordHash *string `gorm:"size:255" json:"-"`

	// RefreshToken holds the single currently valid refresh credential, or
	// nil when the session has been invalidated.
	RefreshToken *string `gorm:"size:500;index" json:"-"`

	LastLoginAt *time.Time `gorm:"precision:3" json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName keeps the table name aligned with the shared campus schema.
func (AuthAccount) TableName() string { return "core_auth_accounts" }
