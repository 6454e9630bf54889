// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sejong_catch_backend/internal/feature/auth/domain/entity"
	"sejong_catch_backend/internal/feature/auth/transport/http/dto"
	"sejong_catch_backend/internal/feature/auth/usecase"
	jwtplat "sejong_catch_backend/internal/platform/jwt"
)

// AuthUsecase defines the authentication operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	// Login authenticates a student id / password pair and returns the
	// merged identity with a fresh token pair.
	Login(ctx context.Context, studentID, password string) (*usecase.LoginResult, error)
	// Logout invalidates the session holding the given refresh token.
	Logout(ctx context.Context, refreshToken string) error
	// Refresh rotates the token pair bound to the given refresh token.
	Refresh(ctx context.Context, refreshToken string) (*usecase.LoginResult, error)
	// Me returns the identity behind an access-token subject.
	Me(ctx context.Context, userID string) (*entity.User, error)
}

// LoginLimiter throttles repeated login attempts per client key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthHandler handles the HTTP requests of the auth endpoints.
type AuthHandler struct {
	auth    AuthUsecase
	limiter LoginLimiter
}

// NewAuthHandler creates a new instance of AuthHandler. limiter may be nil
// when rate limiting is disabled.
func NewAuthHandler(auth AuthUsecase, limiter LoginLimiter) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter}
}

// Login handles POST /auth/login.
// Missing fields yield 400, a credential rejected by both the local check and
// the SSO portal yields a uniform 401, an unreachable or misbehaving portal
// yields 502.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "studentId and password are required."})
		return
	}

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Request.Context(), c.ClientIP()+":"+req.StudentID)
		if err != nil {
			slog.Warn("login rate limiter unavailable", "error", err)
		}
		if !allowed {
			slog.Warn("login rate limited", "student_id", req.StudentID, "remote_addr", c.ClientIP())
			c.JSON(http.StatusTooManyRequests, dto.ErrorRes{Message: "Too many login attempts. Try again later."})
			return
		}
	}

	result, err := h.auth.Login(c.Request.Context(), req.StudentID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("login rejected", "student_id", req.StudentID, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "Invalid studentId or password."})
		case errors.Is(err, usecase.ErrSSOUnavailable):
			slog.Error("sso integration failed", "error", err, "student_id", req.StudentID)
			c.JSON(http.StatusBadGateway, dto.ErrorRes{Message: "SSO service request failed."})
		default:
			slog.Error("login failed", "error", err, "student_id", req.StudentID)
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: "Internal Server Error"})
		}
		return
	}

	slog.Info("login successful", "user_id", result.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Logout handles POST /auth/logout. Repeating a logout with an already
// cleared token yields 404, which clients should treat as benign.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "refreshToken is required."})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenRequired):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "refreshToken is required."})
		case errors.Is(err, usecase.ErrRefreshTokenNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorRes{Message: "Refresh token not found."})
		default:
			slog.Error("logout failed", "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: "Internal Server Error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Refresh handles POST /auth/refresh. The presented refresh token must
// verify cryptographically and still occupy its account's single slot.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "refreshToken is required."})
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenRequired):
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Message: "refreshToken is required."})
		case errors.Is(err, jwtplat.ErrInvalidToken),
			errors.Is(err, jwtplat.ErrWrongTokenType),
			errors.Is(err, usecase.ErrRefreshTokenNotFound):
			slog.Warn("refresh rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "Invalid refresh token."})
		default:
			slog.Error("refresh failed", "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginRes{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Me handles GET /auth/me for authenticated users.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(jwtplat.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Message: "missing bearer token"})
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorRes{Message: "User not found."})
			return
		}
		slog.Error("profile lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
