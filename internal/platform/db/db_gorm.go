// Package db opens the PostgreSQL connection and applies migrations and seed
// data on startup.
package db

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sejong_catch_backend/internal/config"
	"sejong_catch_backend/internal/feature/auth/domain/entity"
)

// OpenDB connects to PostgreSQL, retrying for up to a minute so the service
// survives a database that is still starting. With RUN_MIGRATIONS=true it
// also migrates the auth tables and seeds the admin account.
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&entity.User{},
			&entity.AuthAccount{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
		if err := SeedAdmin(db, cfg); err != nil {
			log.Fatalf("failed to seed admin account: %v", err)
		}
	}

	return db
}

// SeedAdmin inserts the bootstrap admin identity and its local auth account
// unless an account with the seed username already exists. This is the only
// way a local credential comes into being without an SSO login.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SeedAdminPassword == "" {
		// No password configured: nothing to seed.
		return nil
	}

	var existing entity.AuthAccount
	err := db.Where("provider = ? AND provider_user_id = ?", entity.ProviderLocal, cfg.SeedAdminUsername).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	passwordHash := string(hashed)

	name := "Administrator"
	user := &entity.User{
		ID:    uuid.NewString(),
		Email: cfg.SeedAdminEmail,
		Name:  &name,
		Role:  entity.RoleAdmin,
	}
	account := &entity.AuthAccount{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		Provider:       entity.ProviderLocal,
		ProviderUserID: cfg.SeedAdminUsername,
		PasswordHash:   &passwordHash,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(account).Error
	})
}
