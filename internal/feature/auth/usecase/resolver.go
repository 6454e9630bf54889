package usecase

import (
	"context"
	"errors"

	"sejong_catch_backend/internal/feature/auth/domain/entity"
)

// Resolver outcome errors. The SSO client maps transport-level failures onto
// these two sentinels; anything else propagates unchanged.
var (
	// ErrSSORejected means the portal explicitly refused the credentials.
	ErrSSORejected = errors.New("sso rejected credentials")
)

// SSOResolver abstracts the remote identity provider.
// Following Go convention: the interface lives with its consumer; the
// implementation is in internal/platform/sso.
type SSOResolver interface {
	// Resolve authenticates the student against the SSO portal and returns
	// the reported profile. Returns ErrSSORejected on an explicit
	// authentication rejection and an error wrapping ErrSSOUnavailable when
	// the portal cannot be reached or misbehaves.
	Resolve(ctx context.Context, studentID, password string) (*entity.SSOProfile, error)
}
