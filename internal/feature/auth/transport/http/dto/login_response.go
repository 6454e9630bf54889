package dto

import "sejong_catch_backend/internal/feature/auth/domain/entity"

// LoginRes represents the response body of a successful login or refresh.
type LoginRes struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// ErrorRes is the uniform error body for the auth endpoints.
type ErrorRes struct {
	Message string `json:"message"`
}
