package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/skbr1234/user-authentication-service/domain"
)

// MockOneTimeTokenRepository implements domain.OneTimeTokenRepository for testing
type MockOneTimeTokenRepository struct {
	ReplaceFunc       func(ctx context.Context, token *domain.OneTimeToken) error
	FindByValueFunc   func(ctx context.Context, value string) (*domain.OneTimeToken, error)
	DeleteByIDFunc    func(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpiredFunc func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockOneTimeTokenRepository creates a new MockOneTimeTokenRepository with default behaviors
func NewMockOneTimeTokenRepository() *MockOneTimeTokenRepository {
	return &MockOneTimeTokenRepository{}
}

// Replace deletes prior tokens for the pair and stores the new one
func (m *MockOneTimeTokenRepository) Replace(ctx context.Context, token *domain.OneTimeToken) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindByValue looks up a token by its opaque value
func (m *MockOneTimeTokenRepository) FindByValue(ctx context.Context, value string) (*domain.OneTimeToken, error) {
	if m.FindByValueFunc != nil {
		return m.FindByValueFunc(ctx, value)
	}
	// Default behavior: not found
	return nil, domain.ErrTokenNotFound
}

// DeleteByID removes the token record
func (m *MockOneTimeTokenRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	// Default behavior: one row removed
	return true, nil
}

// DeleteExpired removes all expired token records
func (m *MockOneTimeTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	// Default behavior: nothing reaped
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.OneTimeTokenRepository = (*MockOneTimeTokenRepository)(nil)
