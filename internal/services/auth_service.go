package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/skbr1234/user-authentication-service/domain"
)

// AuthServiceImpl implements domain.AuthService. It holds no mutable state of
// its own; every durable record lives behind the injected repositories, so
// concurrent flows only contend inside the store.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	ottSvc      domain.OneTimeTokenService
	mailer      domain.MailerService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	ottSvc domain.OneTimeTokenService,
	mailer domain.MailerService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		ottSvc:      ottSvc,
		mailer:      mailer,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, role string) (*domain.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = "user"
	}

	// Check if user already exists. The unique index backs this up under
	// concurrent registrations.
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		Verified:     false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokenValue, err := s.ottSvc.Issue(ctx, user.ID, domain.PurposeEmailVerification)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}

	s.notify(user, domain.PurposeEmailVerification, tokenValue)

	log.Printf("%s: user_id=%d email=%s", domain.UserRegisteredEvent, user.ID, user.Email)

	return s.issueSession(user, false)
}

// Login implements domain.AuthService. Unknown email, missing credential and
// wrong password all fail with the same error, and the first two still pay
// one hash comparison so response timing does not reveal which case occurred.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, remember bool) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.passwordSvc.DummyCompare()
		return nil, domain.ErrInvalidCredentials
	}

	if !user.HasPassword() {
		s.passwordSvc.DummyCompare()
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		log.Printf("%s: user_id=%d email=%s", domain.UserLoginFailedEvent, user.ID, user.Email)
		return nil, domain.ErrInvalidCredentials
	}

	log.Printf("%s: user_id=%d email=%s remember=%t", domain.UserLoginEvent, user.ID, user.Email, remember)

	return s.issueSession(user, remember)
}

// Refresh implements domain.AuthService. Stateless: the refresh token proves
// itself by signature, no server-side session record is consulted.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.Validate(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // keep same refresh token
		ExpiresIn:    int64(s.tokenSvc.AccessTokenTTL(false).Seconds()),
	}, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, tokenValue string) error {
	userID, err := s.ottSvc.Consume(ctx, tokenValue, domain.PurposeEmailVerification)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidOrExpiredToken, err)
	}

	if err := s.userRepo.SetVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	log.Printf("%s: user_id=%d", domain.EmailVerifiedEvent, userID)
	return nil
}

// ForgotPassword implements domain.AuthService. An unknown email reports
// success without side effect so the endpoint cannot be used to enumerate
// accounts.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	tokenValue, err := s.ottSvc.Issue(ctx, user.ID, domain.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.notify(user, domain.PurposePasswordReset, tokenValue)

	log.Printf("%s: user_id=%d email=%s", domain.PasswordResetRequestedEvent, user.ID, user.Email)
	return nil
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	userID, err := s.ottSvc.Consume(ctx, tokenValue, domain.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidOrExpiredToken, err)
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.SetPassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("%s: user_id=%d", domain.PasswordResetCompletedEvent, userID)
	return nil
}

// ResendVerification implements domain.AuthService. Unknown emails report
// success for the same anti-enumeration reason as ForgotPassword.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Verified {
		return domain.ErrAlreadyVerified
	}

	ok, wait, err := s.ottSvc.CanResend(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check resend window: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: retry in %ds", domain.ErrResendThrottled, wait)
	}

	tokenValue, err := s.ottSvc.Issue(ctx, user.ID, domain.PurposeEmailVerification)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}

	s.notify(user, domain.PurposeEmailVerification, tokenValue)

	log.Printf("%s: user_id=%d email=%s", domain.VerificationResentEvent, user.ID, user.Email)
	return nil
}

// issueSession mints the access and refresh token pair for a user
func (s *AuthServiceImpl) issueSession(user *domain.User, remember bool) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Email, remember)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenSvc.AccessTokenTTL(remember).Seconds()),
	}, nil
}

// notify delivers the link for a freshly issued token. Fire and forget:
// delivery failures are logged and never abort the owning flow.
func (s *AuthServiceImpl) notify(user *domain.User, purpose domain.TokenPurpose, tokenValue string) {
	email := user.Email
	userID := user.ID
	go func() {
		var err error
		if purpose == domain.PurposePasswordReset {
			err = s.mailer.SendPasswordResetLink(email, tokenValue)
		} else {
			err = s.mailer.SendVerificationLink(email, tokenValue)
		}
		if err != nil {
			log.Printf("%s: user_id=%d email=%s purpose=%s error=%v", domain.NotifyFailedEvent, userID, email, purpose, err)
		}
	}()
}
