package mocks

import (
	"fmt"
	"time"

	"github.com/skbr1234/user-authentication-service/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, email string, remember bool) (string, error)
	GenerateRefreshTokenFunc func(userID uint, email string) (string, error)
	ValidateFunc             func(token string) (*domain.TokenClaims, error)
	AccessTokenTTLFunc       func(remember bool) time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken creates an access token
func (m *MockTokenService) GenerateAccessToken(userID uint, email string, remember bool) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email, remember)
	}
	// Default behavior: deterministic fake token
	return fmt.Sprintf("access_%d_%t", userID, remember), nil
}

// GenerateRefreshToken creates a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, email)
	}
	// Default behavior: deterministic fake token
	return fmt.Sprintf("refresh_%d", userID), nil
}

// Validate verifies a token and returns its claims
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// AccessTokenTTL returns the configured access token lifetime
func (m *MockTokenService) AccessTokenTTL(remember bool) time.Duration {
	if m.AccessTokenTTLFunc != nil {
		return m.AccessTokenTTLFunc(remember)
	}
	// Default behavior: spec-shaped defaults
	if remember {
		return 30 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
