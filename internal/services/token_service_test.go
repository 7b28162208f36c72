package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/skbr1234/user-authentication-service/domain"
	"github.com/skbr1234/user-authentication-service/internal/mocks"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		VerificationTTL: 24 * time.Hour,
		ResetTTL:        time.Hour,
		ResendWindow:    60 * time.Second,
	}
}

func newTokenServiceForTest(t *testing.T, repo domain.OneTimeTokenRepository, client *redis.Client) *OneTimeTokenServiceImpl {
	t.Helper()
	if repo == nil {
		repo = mocks.NewMockOneTimeTokenRepository()
	}
	return NewOneTimeTokenService(repo, client, testTokenConfig())
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestOneTimeTokenService_IssueStoresReplacement(t *testing.T) {
	repo := mocks.NewMockOneTimeTokenRepository()
	var stored *domain.OneTimeToken
	repo.ReplaceFunc = func(ctx context.Context, token *domain.OneTimeToken) error {
		stored = token
		return nil
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTokenServiceForTest(t, repo, nil)
	svc.now = func() time.Time { return now }

	value, err := svc.Issue(context.Background(), 5, domain.PurposeEmailVerification)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("token was not stored")
	}
	if stored.Value != value {
		t.Errorf("returned value %q does not match stored %q", value, stored.Value)
	}
	if stored.UserID != 5 {
		t.Errorf("expected user 5, got %d", stored.UserID)
	}
	if !stored.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
		t.Errorf("expected 24h verification TTL, got expiry %v", stored.ExpiresAt)
	}
	if stored.ID == uuid.Nil {
		t.Error("expected a generated token ID")
	}
}

func TestOneTimeTokenService_IssueResetTTL(t *testing.T) {
	repo := mocks.NewMockOneTimeTokenRepository()
	var stored *domain.OneTimeToken
	repo.ReplaceFunc = func(ctx context.Context, token *domain.OneTimeToken) error {
		stored = token
		return nil
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTokenServiceForTest(t, repo, nil)
	svc.now = func() time.Time { return now }

	if _, err := svc.Issue(context.Background(), 5, domain.PurposePasswordReset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expected 1h reset TTL, got expiry %v", stored.ExpiresAt)
	}
}

func TestOneTimeTokenService_IssueValueEncoding(t *testing.T) {
	seed := bytes.Repeat([]byte{0xAB}, tokenValueBytes)
	svc := newTokenServiceForTest(t, nil, nil)
	svc.rand = bytes.NewReader(seed)

	value, err := svc.Issue(context.Background(), 1, domain.PurposeEmailVerification)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := base64.RawURLEncoding.EncodeToString(seed)
	if value != want {
		t.Errorf("expected deterministic encoding %q, got %q", want, value)
	}
	// 32 bytes of entropy encode to 43 URL-safe characters.
	if len(value) != 43 {
		t.Errorf("expected 43-character value, got %d", len(value))
	}
}

func TestOneTimeTokenService_IssueRejectsUnknownPurpose(t *testing.T) {
	svc := newTokenServiceForTest(t, nil, nil)
	if _, err := svc.Issue(context.Background(), 1, domain.TokenPurpose("MAGIC_LINK")); err == nil {
		t.Fatal("expected an error for an unknown purpose")
	}
}

func TestOneTimeTokenService_IssueExhaustedEntropy(t *testing.T) {
	svc := newTokenServiceForTest(t, nil, nil)
	svc.rand = bytes.NewReader(nil)

	if _, err := svc.Issue(context.Background(), 1, domain.PurposeEmailVerification); err == nil {
		t.Fatal("expected an error when the random source fails")
	}
}

func TestOneTimeTokenService_Consume(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := func() *domain.OneTimeToken {
		return &domain.OneTimeToken{
			ID:        uuid.New(),
			Value:     "stored-value",
			Purpose:   domain.PurposeEmailVerification,
			UserID:    9,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now.Add(-time.Hour),
		}
	}

	tests := []struct {
		name          string
		purpose       domain.TokenPurpose
		setupMocks    func(*mocks.MockOneTimeTokenRepository)
		expectedError error
		wantUserID    uint
	}{
		{
			name:    "successful consumption",
			purpose: domain.PurposeEmailVerification,
			setupMocks: func(repo *mocks.MockOneTimeTokenRepository) {
				repo.FindByValueFunc = func(ctx context.Context, value string) (*domain.OneTimeToken, error) {
					return record(), nil
				}
			},
			wantUserID: 9,
		},
		{
			name:          "token not found",
			purpose:       domain.PurposeEmailVerification,
			setupMocks:    func(*mocks.MockOneTimeTokenRepository) {},
			expectedError: domain.ErrTokenNotFound,
		},
		{
			name:    "purpose mismatch",
			purpose: domain.PurposePasswordReset,
			setupMocks: func(repo *mocks.MockOneTimeTokenRepository) {
				repo.FindByValueFunc = func(ctx context.Context, value string) (*domain.OneTimeToken, error) {
					return record(), nil
				}
			},
			expectedError: domain.ErrTokenPurposeMismatch,
		},
		{
			name:    "expired token",
			purpose: domain.PurposeEmailVerification,
			setupMocks: func(repo *mocks.MockOneTimeTokenRepository) {
				repo.FindByValueFunc = func(ctx context.Context, value string) (*domain.OneTimeToken, error) {
					r := record()
					r.ExpiresAt = now.Add(-time.Minute)
					return r, nil
				}
			},
			expectedError: domain.ErrTokenExpired,
		},
		{
			name:    "lost the consumption race",
			purpose: domain.PurposeEmailVerification,
			setupMocks: func(repo *mocks.MockOneTimeTokenRepository) {
				repo.FindByValueFunc = func(ctx context.Context, value string) (*domain.OneTimeToken, error) {
					return record(), nil
				}
				repo.DeleteByIDFunc = func(ctx context.Context, id uuid.UUID) (bool, error) {
					return false, nil
				}
			},
			expectedError: domain.ErrTokenNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockOneTimeTokenRepository()
			tt.setupMocks(repo)

			svc := newTokenServiceForTest(t, repo, nil)
			svc.now = func() time.Time { return now }

			userID, err := svc.Consume(context.Background(), "stored-value", tt.purpose)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID != tt.wantUserID {
				t.Errorf("expected user %d, got %d", tt.wantUserID, userID)
			}
		})
	}
}

func TestOneTimeTokenService_ResendThrottle(t *testing.T) {
	mr, client := newMiniredisClient(t)
	svc := newTokenServiceForTest(t, nil, client)
	ctx := context.Background()

	ok, wait, err := svc.CanResend(ctx, 5)
	if err != nil || !ok || wait != 0 {
		t.Fatalf("fresh user must be allowed to resend: ok=%v wait=%d err=%v", ok, wait, err)
	}

	if _, err := svc.Issue(ctx, 5, domain.PurposeEmailVerification); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, wait, err = svc.CanResend(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || wait <= 0 {
		t.Fatalf("issue must arm the throttle: ok=%v wait=%d", ok, wait)
	}

	// Other users are unaffected.
	ok, _, err = svc.CanResend(ctx, 6)
	if err != nil || !ok {
		t.Fatalf("throttle must be per user: ok=%v err=%v", ok, err)
	}

	mr.FastForward(61 * time.Second)

	ok, _, err = svc.CanResend(ctx, 5)
	if err != nil || !ok {
		t.Fatalf("throttle must clear after the window: ok=%v err=%v", ok, err)
	}
}

func TestOneTimeTokenService_ResetIssueDoesNotArmThrottle(t *testing.T) {
	_, client := newMiniredisClient(t)
	svc := newTokenServiceForTest(t, nil, client)
	ctx := context.Background()

	if _, err := svc.Issue(ctx, 5, domain.PurposePasswordReset); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, _, err := svc.CanResend(ctx, 5)
	if err != nil || !ok {
		t.Fatalf("reset issuance must not throttle verification resends: ok=%v err=%v", ok, err)
	}
}

func TestOneTimeTokenService_NilRedisDisablesThrottle(t *testing.T) {
	svc := newTokenServiceForTest(t, nil, nil)

	ok, wait, err := svc.CanResend(context.Background(), 5)
	if err != nil || !ok || wait != 0 {
		t.Fatalf("nil redis must disable throttling: ok=%v wait=%d err=%v", ok, wait, err)
	}
}
