package usecase

import (
	"context"
	"time"

	"sejong_catch_backend/internal/feature/auth/domain/entity"
)

// AccountRepository abstracts the credential store.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type AccountRepository interface {
	// FindByProviderUserID retrieves an auth account by its natural key
	// (provider, provider user id) with the owning User eagerly loaded.
	// Returns ErrAccountNotFound when no account matches.
	FindByProviderUserID(ctx context.Context, provider, providerUserID string) (*entity.AuthAccount, error)

	// FindUserByID retrieves a user by id. Returns ErrAccountNotFound when
	// no user matches.
	FindUserByID(ctx context.Context, id string) (*entity.User, error)

	// Upsert writes the user and its auth account inside one transaction.
	// Both writes are keyed by their natural keys: the user by id, the
	// account by (provider, provider user id). A concurrent reader must
	// never observe the user without the account.
	Upsert(ctx context.Context, user *entity.User, account *entity.AuthAccount) error

	// FindByRefreshToken retrieves the auth account currently holding the
	// given refresh-token value, scoped to the provider, with the owning
	// User eagerly loaded. Returns ErrRefreshTokenNotFound when no account
	// holds it.
	FindByRefreshToken(ctx context.Context, provider, refreshToken string) (*entity.AuthAccount, error)

	// SetRefreshToken overwrites the account's single refresh-token slot and
	// stamps the last-login time. Concurrent writers race; last write wins.
	SetRefreshToken(ctx context.Context, accountID, refreshToken string, at time.Time) error

	// ClearRefreshToken nullifies the refresh-token slot of the account
	// currently holding the given value, scoped to the provider. Returns
	// ErrRefreshTokenNotFound when no account holds it.
	ClearRefreshToken(ctx context.Context, provider, refreshToken string, at time.Time) error
}
