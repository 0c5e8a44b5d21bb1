package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-server/internal/model"
)

var _ model.AuthTokenStore = (*AuthTokenRepository)(nil)

type AuthTokenRepository struct {
	db *Connection
}

func NewAuthTokenRepository(db *Connection) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) Create(ctx context.Context, token model.AuthToken) error {
	const query = `INSERT INTO auth_tokens (id, user_id, token_hash, created_at)
				   VALUES ($1, $2, $3, NOW())`

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	if _, err := r.db.Exec(ctx, query, token.ID, token.UserID, token.TokenHash); err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) GetByHash(ctx context.Context, hash []byte) (model.AuthToken, error) {
	const query = `SELECT id, user_id, token_hash, created_at
				   FROM auth_tokens WHERE token_hash = $1`

	var token model.AuthToken
	err := r.db.QueryRow(ctx, query, hash).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuthToken{}, model.ErrNotFound
		}
		return model.AuthToken{}, fmt.Errorf("failed to get auth token by hash: %w", err)
	}
	return token, nil
}

func (r *AuthTokenRepository) DeleteByHash(ctx context.Context, userID uuid.UUID, hash []byte) error {
	const query = `DELETE FROM auth_tokens WHERE user_id = $1 AND token_hash = $2`
	cmd, err := r.db.Exec(ctx, query, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AuthTokenRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM auth_tokens WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete auth tokens by user: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM auth_tokens WHERE user_id = $1`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count auth tokens: %w", err)
	}
	return count, nil
}
