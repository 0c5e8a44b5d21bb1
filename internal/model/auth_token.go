package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthTokenStore persists the per-user active-token set. Rows are created
// on login and deleted on logout; there is no soft state in between.
type AuthTokenStore interface {
	Create(ctx context.Context, token AuthToken) error
	GetByHash(ctx context.Context, hash []byte) (AuthToken, error)
	DeleteByHash(ctx context.Context, userID uuid.UUID, hash []byte) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// AuthToken is one member of a user's active-token set. Only the sha256
// hash of the issued token string is stored.
type AuthToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash []byte
	CreatedAt time.Time
}
