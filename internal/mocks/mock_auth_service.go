package mocks

import (
	"context"

	"github.com/skbr1234/user-authentication-service/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc           func(ctx context.Context, email, password, role string) (*domain.AuthResult, error)
	LoginFunc              func(ctx context.Context, email, password string, remember bool) (*domain.AuthResult, error)
	RefreshFunc            func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	VerifyEmailFunc        func(ctx context.Context, tokenValue string) error
	ForgotPasswordFunc     func(ctx context.Context, email string) error
	ResetPasswordFunc      func(ctx context.Context, tokenValue, newPassword string) error
	ResendVerificationFunc func(ctx context.Context, email string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultResult() *domain.AuthResult {
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Email: "test@example.com", Role: "user"},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    86400,
	}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, email, password, role string) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, role)
	}
	return defaultResult(), nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string, remember bool) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, remember)
	}
	return defaultResult(), nil
}

// Refresh mints a new access token from a refresh token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return defaultResult(), nil
}

// VerifyEmail redeems a verification token
func (m *MockAuthService) VerifyEmail(ctx context.Context, tokenValue string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, tokenValue)
	}
	return nil
}

// ForgotPassword starts the password recovery flow
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

// ResetPassword redeems a reset token and updates the credential
func (m *MockAuthService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, tokenValue, newPassword)
	}
	return nil
}

// ResendVerification re-issues and re-sends a verification token
func (m *MockAuthService) ResendVerification(ctx context.Context, email string) error {
	if m.ResendVerificationFunc != nil {
		return m.ResendVerificationFunc(ctx, email)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
