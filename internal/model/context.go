package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager attaches and retrieves the authenticated caller identity
// and the raw bearer token on a request context.
type ContextManager interface {
	SetIdentity(ctx context.Context, userID uuid.UUID, token string) context.Context
	GetUserID(ctx context.Context) (uuid.UUID, bool)
	GetToken(ctx context.Context) (string, bool)
}
