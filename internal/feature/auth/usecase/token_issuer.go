package usecase

// TokenIssuer abstracts signed-token minting and verification.
// Following Go convention: the interface lives with its consumer; the
// implementation is in internal/platform/jwt.
type TokenIssuer interface {
	// IssueAccessToken mints a short-lived access token carrying subject id,
	// role, and email.
	IssueAccessToken(userID, role string, email *string) (string, error)

	// IssueRefreshToken mints a long-lived refresh token carrying subject id,
	// role, and a "refresh" type discriminator.
	IssueRefreshToken(userID, role string) (string, error)

	// RefreshTokenSubject verifies a refresh token and returns its subject
	// id. Fails on bad signature, expiry, issuer, or a type discriminator
	// other than "refresh".
	RefreshTokenSubject(token string) (string, error)
}
