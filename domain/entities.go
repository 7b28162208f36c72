package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an identity record in the system
type User struct {
	ID           uint
	Email        string
	PasswordHash string
	Role         string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether a credential has been set for the user.
// Users created through invitation flows may exist without one.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// TokenPurpose defines what a one-time token may be redeemed for
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "EMAIL_VERIFICATION"
	PurposePasswordReset     TokenPurpose = "PASSWORD_RESET"
)

// Valid reports whether the purpose is one of the known values
func (p TokenPurpose) Valid() bool {
	return p == PurposeEmailVerification || p == PurposePasswordReset
}

// OneTimeToken is a single-use credential artifact bound to one user and one
// purpose. The record's existence is what makes it redeemable: consumption
// deletes the row, so a token can only ever be spent once.
type OneTimeToken struct {
	ID        uuid.UUID
	Value     string
	Purpose   TokenPurpose
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant
func (t *OneTimeToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims represents the payload carried by a session token
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
