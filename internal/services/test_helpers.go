package services

import (
	"testing"
	"time"

	"github.com/skbr1234/user-authentication-service/domain"
	"github.com/skbr1234/user-authentication-service/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	ottSvc domain.OneTimeTokenService,
	mailer domain.MailerService) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if ottSvc == nil {
		ottSvc = mocks.NewMockOneTimeTokenService()
	}
	if mailer == nil {
		mailer = mocks.NewMockMailerService()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, ottSvc, mailer)
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: "hashed_password123",
		Role:         "user",
		Verified:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}
