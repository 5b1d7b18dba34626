package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// TokenService issues token pairs and keeps the refresh fingerprint recorded
// on the user row in step with them. Only the last issued refresh token is
// accepted for rotation.
type TokenService struct {
	codec  model.TokenCodec
	store  model.UserStore
	cache  model.IdentityCache
	logger *logger.Logger
}

func NewTokenService(codec model.TokenCodec, store model.UserStore, cache model.IdentityCache, logger *logger.Logger) *TokenService {
	return &TokenService{codec: codec, store: store, cache: cache, logger: logger}
}

func (s *TokenService) issuePair(email string) (model.TokenPair, error) {
	access, err := s.codec.IssueDefault(model.ScopeAccess, email)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := s.codec.IssueDefault(model.ScopeRefresh, email)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    model.TokenTypeBearer,
	}, nil
}

// Issue creates a fresh pair for email and records its refresh fingerprint,
// replacing whatever was recorded before.
func (s *TokenService) Issue(ctx context.Context, email string) (model.TokenPair, error) {
	pair, err := s.issuePair(email)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.SetRefreshToken(ctx, email, fingerprint(pair.RefreshToken)); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}
	s.cache.Invalidate(ctx, email)

	return pair, nil
}

// Rotate swaps the recorded fingerprint of presented for the one of a newly
// issued pair. It fails with ErrRefreshTokenMismatch when presented is not the
// last issued refresh token, including when a concurrent rotation won.
func (s *TokenService) Rotate(ctx context.Context, email string, presented string) (model.TokenPair, error) {
	pair, err := s.issuePair(email)
	if err != nil {
		return model.TokenPair{}, err
	}

	rotated, err := s.store.RotateRefreshToken(ctx, email, fingerprint(presented), fingerprint(pair.RefreshToken))
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if !rotated {
		s.logger.Info("Token service: refresh token is not the last issued one",
			"email", email)
		return model.TokenPair{}, model.ErrRefreshTokenMismatch
	}
	s.cache.Invalidate(ctx, email)

	return pair, nil
}

// Revoke forgets the recorded refresh fingerprint, so no refresh token of
// email can be rotated any more.
func (s *TokenService) Revoke(ctx context.Context, email string) error {
	if err := s.store.SetRefreshToken(ctx, email, ""); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	s.cache.Invalidate(ctx, email)

	return nil
}

func fingerprint(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

