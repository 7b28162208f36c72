package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenPurpose_Valid(t *testing.T) {
	tests := []struct {
		name    string
		purpose TokenPurpose
		want    bool
	}{
		{
			name:    "email verification",
			purpose: PurposeEmailVerification,
			want:    true,
		},
		{
			name:    "password reset",
			purpose: PurposePasswordReset,
			want:    true,
		},
		{
			name:    "empty purpose",
			purpose: TokenPurpose(""),
			want:    false,
		},
		{
			name:    "unknown purpose",
			purpose: TokenPurpose("MAGIC_LINK"),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.purpose.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOneTimeToken_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "expires in the future",
			expiresAt: now.Add(time.Hour),
			want:      false,
		},
		{
			name:      "expired in the past",
			expiresAt: now.Add(-time.Hour),
			want:      true,
		},
		{
			name:      "expires exactly now",
			expiresAt: now,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &OneTimeToken{
				ID:        uuid.New(),
				Value:     "opaque",
				Purpose:   PurposeEmailVerification,
				UserID:    1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: now.Add(-24 * time.Hour),
			}
			if got := token.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_HasPassword(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want bool
	}{
		{
			name: "credential set",
			user: &User{ID: 1, Email: "test@example.com", PasswordHash: "$2a$12$hash"},
			want: true,
		},
		{
			name: "no credential set",
			user: &User{ID: 2, Email: "invited@example.com"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasPassword(); got != tt.want {
				t.Errorf("HasPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}
