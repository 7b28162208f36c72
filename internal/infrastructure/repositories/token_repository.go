package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skbr1234/user-authentication-service/domain"
)

// TokenRepositoryImpl implements domain.OneTimeTokenRepository using GORM
type TokenRepositoryImpl struct {
	db *gorm.DB
}

// DBOneTimeToken represents the database model for OneTimeToken
type DBOneTimeToken struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Value     string    `gorm:"uniqueIndex;size:64"`
	Purpose   string    `gorm:"index:idx_tokens_user_purpose;size:32"`
	UserID    uint      `gorm:"index:idx_tokens_user_purpose"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOneTimeToken) TableName() string {
	return "one_time_tokens"
}

// NewTokenRepository creates a new one-time token repository
func NewTokenRepository(db *gorm.DB) domain.OneTimeTokenRepository {
	return &TokenRepositoryImpl{db: db}
}

// Replace implements domain.OneTimeTokenRepository. The delete and the insert
// run in one transaction so concurrent issuances for the same (user, purpose)
// pair serialize at the store and at most one active token survives.
func (r *TokenRepositoryImpl) Replace(ctx context.Context, token *domain.OneTimeToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ?", token.UserID, string(token.Purpose)).
			Delete(&DBOneTimeToken{}).Error; err != nil {
			return err
		}
		return tx.Create(r.domainToDB(token)).Error
	})
}

// FindByValue implements domain.OneTimeTokenRepository
func (r *TokenRepositoryImpl) FindByValue(ctx context.Context, value string) (*domain.OneTimeToken, error) {
	var dbToken DBOneTimeToken
	err := r.db.WithContext(ctx).Where("value = ?", value).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// DeleteByID implements domain.OneTimeTokenRepository. The conditional delete
// is the commit point of consumption: whichever caller's DELETE removes the
// row wins, every other concurrent caller observes zero rows affected.
func (r *TokenRepositoryImpl) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBOneTimeToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteExpired implements domain.OneTimeTokenRepository
func (r *TokenRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&DBOneTimeToken{})
	return res.RowsAffected, res.Error
}

// domainToDB converts domain token to database token
func (r *TokenRepositoryImpl) domainToDB(token *domain.OneTimeToken) *DBOneTimeToken {
	return &DBOneTimeToken{
		ID:        token.ID,
		Value:     token.Value,
		Purpose:   string(token.Purpose),
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
}

// dbToDomain converts database token to domain token
func (r *TokenRepositoryImpl) dbToDomain(dbToken *DBOneTimeToken) *domain.OneTimeToken {
	return &domain.OneTimeToken{
		ID:        dbToken.ID,
		Value:     dbToken.Value,
		Purpose:   domain.TokenPurpose(dbToken.Purpose),
		UserID:    dbToken.UserID,
		ExpiresAt: dbToken.ExpiresAt,
		CreatedAt: dbToken.CreatedAt,
	}
}
