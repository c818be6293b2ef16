package repository

import (
	"context"
	"errors"
	"time"

	"sanxing/internal/models"
	"sanxing/internal/observability"

	"gorm.io/gorm"
)

// TokenRepository defines persistence operations for opaque bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	// GetByValue returns (nil, nil) when no such token exists; expiry is
	// not checked here, that is the token service's concern.
	GetByValue(ctx context.Context, value string) (*models.Token, error)
	// DeleteExpired removes all tokens whose expiry is at or before now
	// and reports how many rows were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewTokenRepository returns a new TokenRepository implementation.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db, metrics: observability.NewDatabaseMetrics()}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.Token) error {
	defer r.metrics.TrackQuery("create", "tokens")()
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tokenRepository) GetByValue(ctx context.Context, value string) (*models.Token, error) {
	defer r.metrics.TrackQuery("get", "tokens")()
	ctx, span := observability.TraceRepositoryMethod(ctx, "get_by_value", "tokens")
	defer span.End()

	var token models.Token
	if err := r.db.WithContext(ctx).Where("value = ?", value).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &token, nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	defer r.metrics.TrackQuery("delete_expired", "tokens")()
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&models.Token{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
