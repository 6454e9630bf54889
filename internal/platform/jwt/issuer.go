// Package jwtplat issues and verifies the signed access/refresh tokens used
// by the auth feature.
package jwtplat

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// refreshTokenType is the type discriminator carried by refresh tokens.
const refreshTokenType = "refresh"

var (
	// ErrInvalidToken is returned for any signature, expiry, issuer, or
	// audience failure. The caller must re-authenticate.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWrongTokenType is returned when a structurally valid token carries
	// a type discriminator other than "refresh" where a refresh token is
	// expected.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Config holds the signing material and claim parameters for the issuer.
// Both secrets are mandatory; everything is fixed for the process lifetime.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // default 15m
	RefreshTTL    time.Duration // default 7d
	Issuer        string
	Audience      string
}

// AccessClaims is the payload of an access token. The subject id is mirrored
// into UID for clients that cannot read registered claims.
type AccessClaims struct {
	UID   string  `json:"uid"`
	Role  string  `json:"role"`
	Email *string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HS256-signed token pairs. It is stateless and
// safe for concurrent use.
type Issuer struct {
	cfg Config
}

// NewIssuer validates the configuration and creates an Issuer. Missing
// signing secrets are a startup failure, not a per-request condition.
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("jwt: access secret is not configured")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("jwt: refresh secret is not configured")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{cfg: cfg}, nil
}

// IssueAccessToken mints a short-lived access token carrying subject id,
// role, and email, bound to the configured issuer and audience.
func (i *Issuer) IssueAccessToken(userID, role string, email *string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UID:   userID,
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.AccessTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.AccessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken mints a long-lived refresh token. It carries no audience
// claim so it can be presented to a different validating context than access
// tokens.
func (i *Issuer) IssueRefreshToken(userID, role string) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UID:  userID,
		Role: role,
		Type: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.RefreshTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.cfg.RefreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken validates signature, expiry, issuer, and audience, and
// returns the claims.
func (i *Issuer) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.cfg.AccessSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefreshToken validates signature, expiry, and issuer. A token whose
// type discriminator is present but not "refresh" fails with
// ErrWrongTokenType.
func (i *Issuer) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.cfg.RefreshSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != "" && claims.Type != refreshTokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// RefreshTokenSubject verifies a refresh token and returns its subject id.
func (i *Issuer) RefreshTokenSubject(token string) (string, error) {
	claims, err := i.VerifyRefreshToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
