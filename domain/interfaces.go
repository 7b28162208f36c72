package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	SetVerified(ctx context.Context, userID uint) error
	SetPassword(ctx context.Context, userID uint, passwordHash string) error
}

// OneTimeTokenRepository defines one-time token persistence operations.
// Replace and DeleteByID carry the atomicity guarantees the token lifecycle
// depends on; see the implementations for details.
type OneTimeTokenRepository interface {
	// Replace deletes every token for the new token's (user, purpose) pair
	// and persists the new record in a single transaction.
	Replace(ctx context.Context, token *OneTimeToken) error
	FindByValue(ctx context.Context, value string) (*OneTimeToken, error)
	// DeleteByID removes the record and reports whether a row was actually
	// deleted. Under concurrent consumption exactly one caller sees true.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string, remember bool) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, tokenValue string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenValue, newPassword string) error
	ResendVerification(ctx context.Context, email string) error
}

// OneTimeTokenService defines single-use token operations
type OneTimeTokenService interface {
	// Issue generates a fresh token for the user and purpose, invalidating
	// any prior unconsumed tokens of the same purpose.
	Issue(ctx context.Context, userID uint, purpose TokenPurpose) (string, error)
	// Consume redeems a token exactly once and returns the owning user ID
	Consume(ctx context.Context, value string, purpose TokenPurpose) (uint, error)
	// CanResend reports whether a new verification token may be issued for
	// the user yet, and how many seconds remain otherwise
	CanResend(ctx context.Context, userID uint) (bool, int64, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	// DummyCompare burns one hash comparison against a fixed reference value
	// so code paths without a stored credential take the same time as a
	// failed comparison.
	DummyCompare()
}

// TokenService defines session token operations
type TokenService interface {
	GenerateAccessToken(userID uint, email string, remember bool) (string, error)
	GenerateRefreshToken(userID uint, email string) (string, error)
	Validate(token string) (*TokenClaims, error)
	AccessTokenTTL(remember bool) time.Duration
}

// MailerService defines outbound notification operations. Delivery is
// best-effort: callers log failures and never abort the owning flow.
type MailerService interface {
	SendVerificationLink(email, tokenValue string) error
	SendPasswordResetLink(email, tokenValue string) error
}
