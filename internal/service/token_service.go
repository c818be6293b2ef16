package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"sanxing/internal/models"
	"sanxing/internal/observability"
	"sanxing/internal/repository"
)

// tokenBytes is the entropy of an issued token. The hex form is twice this
// long, so clients see a 32-character opaque string.
const tokenBytes = 16

// TokenService issues and validates opaque bearer tokens. Tokens carry no
// claims; everything about them lives in the database, so a token is dead
// the moment its row is gone.
type TokenService struct {
	tokenRepo repository.TokenRepository
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService returns a TokenService issuing tokens valid for ttl.
func NewTokenService(tokenRepo repository.TokenRepository, ttl time.Duration) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue mints a fresh token for userID and persists it. Earlier tokens for
// the same user stay valid until they expire; logging in on a second device
// does not log out the first.
func (s *TokenService) Issue(ctx context.Context, userID uint) (*models.Token, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, models.NewInternalError(err)
	}

	issued := s.now().UTC()
	token := &models.Token{
		Value:     hex.EncodeToString(buf),
		UserID:    userID,
		ExpiresAt: issued.Add(s.ttl),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	observability.TokensIssued.Inc()
	return token, nil
}

// Validate resolves a presented token value to its row. Unknown and expired
// tokens both fail with the same message so a caller cannot distinguish a
// token that never existed from one that ran out.
func (s *TokenService) Validate(ctx context.Context, value string) (*models.Token, error) {
	if len(value) != hex.EncodedLen(tokenBytes) {
		observability.TokenValidations.WithLabelValues("malformed").Inc()
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	token, err := s.tokenRepo.GetByValue(ctx, value)
	if err != nil {
		return nil, err
	}
	if token == nil {
		observability.TokenValidations.WithLabelValues("unknown").Inc()
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}
	if !token.ValidAt(s.now()) {
		observability.TokenValidations.WithLabelValues("expired").Inc()
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	observability.TokenValidations.WithLabelValues("valid").Inc()
	return token, nil
}

// PurgeExpired removes dead token rows. Expired tokens already fail
// validation, so this only reclaims space; it is safe to never run it.
func (s *TokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokenRepo.DeleteExpired(ctx, s.now())
}

// RunPurgeLoop purges expired tokens every interval until ctx is cancelled.
func (s *TokenService) RunPurgeLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.PurgeExpired(ctx)
			if err != nil {
				slog.Error("Token purge failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("Purged expired tokens", "removed", removed)
			}
		}
	}
}
