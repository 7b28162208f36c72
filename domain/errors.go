package domain

import "errors"

// Credential errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyVerified    = errors.New("email already verified")
)

// One-time token errors. These distinctions stay internal; at the HTTP
// boundary they collapse into ErrInvalidOrExpiredToken so callers cannot
// probe which tokens exist.
var (
	ErrTokenNotFound        = errors.New("token not found")
	ErrTokenPurposeMismatch = errors.New("token purpose mismatch")
	ErrTokenExpired         = errors.New("token has expired")

	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// Session token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenMalformed = errors.New("malformed token")
)

// Throttling errors
var (
	ErrResendThrottled = errors.New("resend window not elapsed")
)
