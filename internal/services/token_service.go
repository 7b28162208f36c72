package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/skbr1234/user-authentication-service/domain"
)

// tokenValueBytes is the entropy of a token value before encoding. 32 bytes
// gives 256 bits; base64 raw-URL encoding keeps the value safe to embed in
// links.
const tokenValueBytes = 32

// OneTimeTokenServiceImpl implements domain.OneTimeTokenService. Durable
// state lives in the repository; redis only backs the verification resend
// throttle and may be nil in tests.
type OneTimeTokenServiceImpl struct {
	tokenRepo   domain.OneTimeTokenRepository
	redisClient *redis.Client
	config      TokenConfig
	rand        io.Reader
	now         func() time.Time
}

type TokenConfig struct {
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	ResendWindow    time.Duration
}

// NewOneTimeTokenService creates a new one-time token service
func NewOneTimeTokenService(tokenRepo domain.OneTimeTokenRepository, redisClient *redis.Client, config TokenConfig) *OneTimeTokenServiceImpl {
	return &OneTimeTokenServiceImpl{
		tokenRepo:   tokenRepo,
		redisClient: redisClient,
		config:      config,
		rand:        rand.Reader,
		now:         time.Now,
	}
}

func (s *OneTimeTokenServiceImpl) ttlFor(purpose domain.TokenPurpose) time.Duration {
	if purpose == domain.PurposePasswordReset {
		return s.config.ResetTTL
	}
	return s.config.VerificationTTL
}

func resendKey(userID uint) string {
	return fmt.Sprintf("verify:res:%d", userID)
}

// Issue implements domain.OneTimeTokenService. The repository's Replace
// guarantees at most one active token per (user, purpose) pair.
func (s *OneTimeTokenServiceImpl) Issue(ctx context.Context, userID uint, purpose domain.TokenPurpose) (string, error) {
	if !purpose.Valid() {
		return "", fmt.Errorf("unknown token purpose %q", purpose)
	}

	value, err := s.generateSecureValue()
	if err != nil {
		return "", fmt.Errorf("failed to generate token value: %w", err)
	}

	now := s.now().UTC()
	token := &domain.OneTimeToken{
		ID:        uuid.New(),
		Value:     value,
		Purpose:   purpose,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttlFor(purpose)),
		CreatedAt: now,
	}

	if err := s.tokenRepo.Replace(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	// Arm the resend throttle for verification mails
	if purpose == domain.PurposeEmailVerification && s.redisClient != nil {
		if err := s.redisClient.Set(ctx, resendKey(userID), 1, s.config.ResendWindow).Err(); err != nil {
			return "", fmt.Errorf("failed to set resend throttle: %w", err)
		}
	}

	return value, nil
}

// Consume implements domain.OneTimeTokenService. Lookup validates purpose and
// expiry; the conditional delete is the single commit point, so two
// concurrent calls on the same value yield exactly one success and one
// ErrTokenNotFound. Expired rows are left for the sweeper.
func (s *OneTimeTokenServiceImpl) Consume(ctx context.Context, value string, purpose domain.TokenPurpose) (uint, error) {
	token, err := s.tokenRepo.FindByValue(ctx, value)
	if err != nil {
		return 0, err
	}

	if token.Purpose != purpose {
		return 0, domain.ErrTokenPurposeMismatch
	}

	if token.Expired(s.now().UTC()) {
		return 0, domain.ErrTokenExpired
	}

	deleted, err := s.tokenRepo.DeleteByID(ctx, token.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to consume token: %w", err)
	}
	if !deleted {
		// Lost the race: another consumer redeemed the token first.
		return 0, domain.ErrTokenNotFound
	}

	return token.UserID, nil
}

// CanResend implements domain.OneTimeTokenService with redis-based throttling
func (s *OneTimeTokenServiceImpl) CanResend(ctx context.Context, userID uint) (bool, int64, error) {
	if s.redisClient == nil {
		return true, 0, nil
	}

	ttl, err := s.redisClient.TTL(ctx, resendKey(userID)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// TTL <= 0 means the key is absent or expired
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureValue draws a fresh high-entropy opaque value from the
// configured random source.
func (s *OneTimeTokenServiceImpl) generateSecureValue() (string, error) {
	buf := make([]byte, tokenValueBytes)
	if _, err := io.ReadFull(s.rand, buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
