// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sejong_catch_backend/internal/feature/auth/domain/entity"
	"sejong_catch_backend/internal/feature/auth/usecase"
)

// accountGorm is a GORM implementation of the AccountRepository interface.
type accountGorm struct {
	db *gorm.DB
}

// Compile-time check that accountGorm implements AccountRepository.
var _ usecase.AccountRepository = (*accountGorm)(nil)

// NewAccountGorm creates a new instance of accountGorm with the given
// gorm.DB connection. Constructor for dependency injection.
func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

// FindByProviderUserID retrieves an auth account by its (provider,
// provider_user_id) natural key with the owning user preloaded.
func (r *accountGorm) FindByProviderUserID(ctx context.Context, provider, providerUserID string) (*entity.AuthAccount, error) {
	var account entity.AuthAccount
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindUserByID retrieves a user by primary key.
func (r *accountGorm) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByRefreshToken retrieves the account currently holding the given
// refresh-token value, scoped to the provider.
func (r *accountGorm) FindByRefreshToken(ctx context.Context, provider, refreshToken string) (*entity.AuthAccount, error) {
	var account entity.AuthAccount
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("provider = ? AND refresh_token = ?", provider, refreshToken).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Upsert writes the user and the auth account inside one transaction.
// Both statements are conditional writes keyed by a uniqueness constraint:
// insert, or on conflict update the mutable columns in place. The transaction
// guarantees a concurrent reader never observes the user without the account.
func (r *accountGorm) Upsert(ctx context.Context, user *entity.User, account *entity.AuthAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "name", "role", "major", "year", "updated_at",
			}),
		}).Create(user).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}, {Name: "provider_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id", "password_hash", "last_login_at",
			}),
		}).Create(account).Error
	})
}

// SetRefreshToken overwrites the account's refresh-token slot and stamps the
// last-login time. A single UPDATE by primary key: last writer wins.
func (r *accountGorm) SetRefreshToken(ctx context.Context, accountID, refreshToken string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.AuthAccount{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"refresh_token": refreshToken,
			"last_login_at": at,
		}).Error
}

// ClearRefreshToken nullifies the refresh-token slot of the account holding
// the given value. Zero affected rows means the token was already invalidated
// or never existed.
func (r *accountGorm) ClearRefreshToken(ctx context.Context, provider, refreshToken string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.AuthAccount{}).
		Where("provider = ? AND refresh_token = ?", provider, refreshToken).
		Updates(map[string]any{
			"refresh_token": nil,
			"last_login_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRefreshTokenNotFound
	}
	return nil
}
