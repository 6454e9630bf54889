// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt is rejected by
	// both the local check and the SSO portal. It is deliberately uniform:
	// callers cannot tell an unknown identifier from a wrong password.
	ErrInvalidCredentials = errors.New("invalid student id or password")

	// ErrSSOUnavailable is returned when the SSO portal is unreachable,
	// misconfigured, returned a server error, or the post-login
	// synchronization did not take effect. Safe to retry later.
	ErrSSOUnavailable = errors.New("sso service unavailable")

	// ErrAccountNotFound is returned by repositories when no account matches
	// the given natural key.
	ErrAccountNotFound = errors.New("auth account not found")

	// ErrRefreshTokenRequired is returned when logout or refresh is called
	// with an empty token value.
	ErrRefreshTokenRequired = errors.New("refresh token is required")

	// ErrRefreshTokenNotFound is returned when no account holds the given
	// refresh token, i.e. it was already invalidated or never issued.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)
