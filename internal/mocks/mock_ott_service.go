package mocks

import (
	"context"

	"github.com/skbr1234/user-authentication-service/domain"
)

// MockOneTimeTokenService implements domain.OneTimeTokenService interface for testing
type MockOneTimeTokenService struct {
	IssueFunc     func(ctx context.Context, userID uint, purpose domain.TokenPurpose) (string, error)
	ConsumeFunc   func(ctx context.Context, value string, purpose domain.TokenPurpose) (uint, error)
	CanResendFunc func(ctx context.Context, userID uint) (bool, int64, error)
}

// NewMockOneTimeTokenService creates a new MockOneTimeTokenService with default behaviors
func NewMockOneTimeTokenService() *MockOneTimeTokenService {
	return &MockOneTimeTokenService{}
}

// Issue generates a fresh token value
func (m *MockOneTimeTokenService) Issue(ctx context.Context, userID uint, purpose domain.TokenPurpose) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID, purpose)
	}
	// Default behavior: fixed opaque value
	return "one-time-token-value", nil
}

// Consume redeems a token and returns the owning user ID
func (m *MockOneTimeTokenService) Consume(ctx context.Context, value string, purpose domain.TokenPurpose) (uint, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, value, purpose)
	}
	// Default behavior: not found
	return 0, domain.ErrTokenNotFound
}

// CanResend reports whether the resend window has elapsed
func (m *MockOneTimeTokenService) CanResend(ctx context.Context, userID uint) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, userID)
	}
	// Default behavior: allowed
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OneTimeTokenService = (*MockOneTimeTokenService)(nil)
