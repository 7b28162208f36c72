package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skbr1234/user-authentication-service/domain"
)

func newToken(userID uint, purpose domain.TokenPurpose, value string, ttl time.Duration) *domain.OneTimeToken {
	now := time.Now().UTC()
	return &domain.OneTimeToken{
		ID:        uuid.New(),
		Value:     value,
		Purpose:   purpose,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func TestTokenRepository_ReplaceAndFind(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()

	token := newToken(1, domain.PurposeEmailVerification, "value-1", time.Hour)
	require.NoError(t, repo.Replace(ctx, token))

	found, err := repo.FindByValue(ctx, "value-1")
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)
	assert.Equal(t, uint(1), found.UserID)
	assert.Equal(t, domain.PurposeEmailVerification, found.Purpose)

	_, err = repo.FindByValue(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestTokenRepository_ReplaceInvalidatesPrior(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()

	old := newToken(1, domain.PurposeEmailVerification, "old-value", time.Hour)
	require.NoError(t, repo.Replace(ctx, old))

	fresh := newToken(1, domain.PurposeEmailVerification, "new-value", time.Hour)
	require.NoError(t, repo.Replace(ctx, fresh))

	_, err := repo.FindByValue(ctx, "old-value")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound, "prior token of same purpose must be gone")

	_, err = repo.FindByValue(ctx, "new-value")
	require.NoError(t, err)
}

func TestTokenRepository_ReplaceKeepsOtherPurposes(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()

	verify := newToken(1, domain.PurposeEmailVerification, "verify-value", time.Hour)
	require.NoError(t, repo.Replace(ctx, verify))

	reset := newToken(1, domain.PurposePasswordReset, "reset-value", time.Hour)
	require.NoError(t, repo.Replace(ctx, reset))

	// Tokens are scoped per (user, purpose): the reset token must not evict
	// the verification token, and other users are untouched.
	_, err := repo.FindByValue(ctx, "verify-value")
	require.NoError(t, err)

	other := newToken(2, domain.PurposeEmailVerification, "other-user-value", time.Hour)
	require.NoError(t, repo.Replace(ctx, other))

	_, err = repo.FindByValue(ctx, "verify-value")
	require.NoError(t, err)
}

func TestTokenRepository_DeleteByID(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()

	token := newToken(1, domain.PurposeEmailVerification, "value-1", time.Hour)
	require.NoError(t, repo.Replace(ctx, token))

	deleted, err := repo.DeleteByID(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, token.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete must report no row removed")
}

func TestTokenRepository_ConcurrentDeleteSingleWinner(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()

	token := newToken(1, domain.PurposeEmailVerification, "contested", time.Hour)
	require.NoError(t, repo.Replace(ctx, token))

	const n = 16
	var wg sync.WaitGroup
	wins := make(chan bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deleted, err := repo.DeleteByID(ctx, token.ID)
			if err == nil && deleted {
				wins <- true
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Equal(t, 1, len(wins), "exactly one concurrent delete may win")
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()

	expired := newToken(1, domain.PurposeEmailVerification, "expired-value", -time.Minute)
	require.NoError(t, repo.Replace(ctx, expired))
	live := newToken(2, domain.PurposeEmailVerification, "live-value", time.Hour)
	require.NoError(t, repo.Replace(ctx, live))

	reaped, err := repo.DeleteExpired(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), reaped)

	_, err = repo.FindByValue(ctx, "expired-value")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	_, err = repo.FindByValue(ctx, "live-value")
	require.NoError(t, err)
}
