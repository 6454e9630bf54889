package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sejong_catch_backend/internal/feature/auth/domain/entity"
)

// dummyHash keeps bcrypt comparison time constant when the account has no
// cached hash, so response timing does not reveal whether a local account
// exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginResult is the outcome of a successful authentication: the merged
// identity plus one fresh credential pair.
type LoginResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// authUsecase reconciles login attempts between the locally cached credential
// and the campus SSO portal, and manages the single refresh-token slot per
// account.
type authUsecase struct {
	accounts   AccountRepository
	resolver   SSOResolver
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase. bcryptCost is the
// cost factor used when re-hashing a password after a successful SSO login.
func NewAuthUsecase(accounts AccountRepository, resolver SSOResolver, tokens TokenIssuer, bcryptCost int) *authUsecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authUsecase{
		accounts:   accounts,
		resolver:   resolver,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Login authenticates a student id / password pair.
//
// The fast path verifies the password against the locally cached bcrypt hash
// and never contacts the SSO portal. When that is impossible (no account, no
// cached hash) or the password does not match, the portal is consulted; a
// portal success is merged into the local store inside one transaction so the
// next login can take the fast path. Either way a fresh token pair is issued
// and the refresh token overwrites the account's single slot.
func (u *authUsecase) Login(ctx context.Context, studentID, password string) (*LoginResult, error) {
	account, err := u.accounts.FindByProviderUserID(ctx, entity.ProviderLocal, studentID)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	if account != nil && account.PasswordHash != nil && account.User != nil {
		if bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(password)) == nil {
			return u.issueAndStore(ctx, account)
		}
	} else {
		// Keep timing comparable to the cached-hash path.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
	}

	// Local verification absent or failed: ask the SSO portal.
	profile, err := u.resolver.Resolve(ctx, studentID, password)
	if err != nil {
		if errors.Is(err, ErrSSORejected) {
			// Uniform rejection: do not reveal whether a local account exists.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	account, err = u.syncAccount(ctx, studentID, password, profile, account)
	if err != nil {
		return nil, err
	}

	return u.issueAndStore(ctx, account)
}

// syncAccount merges a portal-verified profile into the local store. Values
// the portal did not report fall back to what is already stored; only then to
// deterministic placeholders derived from the student id.
func (u *authUsecase) syncAccount(ctx context.Context, studentID, password string, profile *entity.SSOProfile, existing *entity.AuthAccount) (*entity.AuthAccount, error) {
	if profile == nil {
		profile = &entity.SSOProfile{}
	}

	var existingUser *entity.User
	if existing != nil {
		existingUser = existing.User
	}

	userID := profile.ID
	if existing != nil && existing.UserID != "" {
		userID = existing.UserID
	}
	if userID == "" {
		userID = "u_" + studentID
	}

	email := profile.Email
	if email == "" && existingUser != nil {
		email = existingUser.Email
	}
	if email == "" {
		// Placeholder for portal accounts that report no address. Collision
		// with a future genuine address is possible but accepted for now.
		email = studentID + "@sejong.local"
	}

	role := profile.Role
	if role == "" && existingUser != nil {
		role = existingUser.Role
	}
	if role == "" {
		role = entity.RoleStudent
	}

	name := profile.Name
	if name == nil && existingUser != nil {
		name = existingUser.Name
	}
	major := profile.Major
	if major == nil && existingUser != nil {
		major = existingUser.Major
	}
	year := profile.Year
	if year == nil && existingUser != nil {
		year = existingUser.Year
	}

	// Re-hash the verified password so future logins take the fast path.
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashed)

	accountID := uuid.NewString()
	if existing != nil {
		accountID = existing.ID
	}

	now := u.now()
	user := &entity.User{
		ID:    userID,
		Email: email,
		Name:  name,
		Role:  role,
		Major: major,
		Year:  year,
	}
	account := &entity.AuthAccount{
		ID:             accountID,
		UserID:         userID,
		Provider:       entity.ProviderLocal,
		ProviderUserID: studentID,
		PasswordHash:   &passwordHash,
		LastLoginAt:    &now,
	}

	if err := u.accounts.Upsert(ctx, user, account); err != nil {
		return nil, err
	}

	// Re-read through the natural key: the caller must only ever see the
	// committed state.
	synced, err := u.accounts.FindByProviderUserID(ctx, entity.ProviderLocal, studentID)
	if err != nil || synced.User == nil {
		return nil, fmt.Errorf("%w: account sync did not take effect", ErrSSOUnavailable)
	}
	return synced, nil
}

// issueAndStore mints a token pair for the account's user and overwrites the
// stored refresh token. Concurrent logins for the same account race here;
// last writer wins and earlier refresh tokens become invalid.
func (u *authUsecase) issueAndStore(ctx context.Context, account *entity.AuthAccount) (*LoginResult, error) {
	user := account.User

	var email *string
	if user.Email != "" {
		email = &user.Email
	}
	accessToken, err := u.tokens.IssueAccessToken(user.ID, user.Role, email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := u.tokens.IssueRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := u.accounts.SetRefreshToken(ctx, account.ID, refreshToken, u.now()); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout invalidates the session holding the given refresh token by clearing
// the account's refresh-token slot. A second call with the same value returns
// ErrRefreshTokenNotFound, which boundary layers should treat as benign.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return ErrRefreshTokenRequired
	}
	return u.accounts.ClearRefreshToken(ctx, entity.ProviderLocal, refreshToken, u.now())
}

// Refresh rotates a credential pair. The presented token must verify
// cryptographically and must equal the single stored slot value for its
// account; rotation overwrites the slot so the presented token cannot be
// replayed.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	userID, err := u.tokens.RefreshTokenSubject(refreshToken)
	if err != nil {
		return nil, err
	}

	account, err := u.accounts.FindByRefreshToken(ctx, entity.ProviderLocal, refreshToken)
	if err != nil {
		return nil, err
	}
	if account.User == nil || account.User.ID != userID {
		return nil, ErrRefreshTokenNotFound
	}

	return u.issueAndStore(ctx, account)
}

// Me returns the identity behind an access-token subject.
func (u *authUsecase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return u.accounts.FindUserByID(ctx, userID)
}
