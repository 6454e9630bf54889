// Package router wires the HTTP routes of the service.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "sejong_catch_backend/internal/feature/auth/transport/handler"
	platformhandler "sejong_catch_backend/internal/platform/http/handler"
	jwtplat "sejong_catch_backend/internal/platform/jwt"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(auth *authhandler.AuthHandler, issuer *jwtplat.Issuer) *gin.Engine {
	r := gin.Default()

	// Liveness probe.
	r.GET("/healthz", platformhandler.Health)

	// Authentication endpoints (no bearer token required).
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)
	r.POST("/auth/refresh", auth.Refresh)

	// Routes requiring a valid access token.
	authed := r.Group("/")
	authed.Use(jwtplat.AuthRequired(issuer))
	{
		authed.GET("/auth/me", auth.Me)
	}

	return r
}
