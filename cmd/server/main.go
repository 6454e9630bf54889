package main

import (
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"sejong_catch_backend/internal/app/router"
	"sejong_catch_backend/internal/config"
	authadapters "sejong_catch_backend/internal/feature/auth/adapters"
	authhandler "sejong_catch_backend/internal/feature/auth/transport/handler"
	authusecase "sejong_catch_backend/internal/feature/auth/usecase"
	infradb "sejong_catch_backend/internal/platform/db"
	platformhttp "sejong_catch_backend/internal/platform/http"
	jwtplat "sejong_catch_backend/internal/platform/jwt"
	"sejong_catch_backend/internal/platform/ratelimit"
	infraredis "sejong_catch_backend/internal/platform/redis"
	"sejong_catch_backend/internal/platform/sso"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Missing signing secrets are a startup failure, never a request error.
	issuer, err := jwtplat.NewIssuer(jwtplat.Config{
		AccessSecret:  []byte(cfg.JWTAccessSecret),
		RefreshSecret: []byte(cfg.JWTRefreshSecret),
		AccessTTL:     cfg.JWTAccessTTL,
		RefreshTTL:    cfg.JWTRefreshTTL,
		Issuer:        cfg.JWTIssuer,
		Audience:      cfg.JWTAudience,
	})
	if err != nil {
		log.Fatalf("failed to configure token issuer: %v", err)
	}

	// db
	db := infradb.OpenDB(cfg)

	// Redis is optional: without it logins simply go unthrottled.
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable. Running without login rate limiting.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("Failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	accountRepo := authadapters.NewAccountGorm(db)

	// SSO portal client
	resolver := sso.NewClient(sso.Config{
		BaseURL:     cfg.SSOBaseURL,
		FallbackURL: cfg.SSOFallbackURL,
	}, platformhttp.NewHTTPClient(cfg.SSOTimeout()))

	// Usecase
	authUC := authusecase.NewAuthUsecase(accountRepo, resolver, issuer, cfg.BcryptCost)

	// Handler
	limiter := ratelimit.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
	authH := authhandler.NewAuthHandler(authUC, limiter)

	r := router.NewRouter(authH, issuer)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
