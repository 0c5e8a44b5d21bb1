package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// TokenService issues, validates, and revokes bearer tokens. A token is
// valid only while its hash is a member of the issuing user's active-token
// set, so revocation works even though the signature never expires.
type TokenService struct {
	manager   model.TokenManager
	store     model.AuthTokenStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.AuthTokenStore, userStore model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, userStore: userStore, logger: logger}
}

// Issue generates a signed token for userID and adds it to the user's
// active-token set.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.manager.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	at := model.AuthToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(token),
	}
	if err := s.store.Create(ctx, at); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a presented token to the authenticated user. The
// signature must verify, the token must still be in the decoded user's
// active set, and the user must exist. Every failure collapses into
// model.ErrUnauthorized.
func (s *TokenService) Authenticate(ctx context.Context, token string) (model.User, error) {
	userID, err := s.manager.Parse(token)
	if err != nil {
		return model.User{}, model.ErrUnauthorized
	}

	presentedHash := hashToken(token)
	stored, err := s.store.GetByHash(ctx, presentedHash)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("token service: failed to look up token", "error", err.Error())
		}
		return model.User{}, model.ErrUnauthorized
	}

	if stored.UserID != userID || !equalBytes(stored.TokenHash, presentedHash) {
		return model.User{}, model.ErrUnauthorized
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.logger.Error("token service: failed to load user", "error", err.Error())
		}
		return model.User{}, model.ErrUnauthorized
	}

	return user, nil
}

// Revoke removes one token from the user's active set.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.store.DeleteByHash(ctx, userID, hashToken(token)); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Already revoked; logout is idempotent.
			return nil
		}
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RevokeAll clears the user's entire active-token set.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke all tokens: %w", err)
	}
	return nil
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
