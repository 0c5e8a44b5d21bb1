package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user with credential material.
type User struct {
	ID           uuid.UUID
	Name         string `validate:"required"`
	Email        string `validate:"required,email"`
	Age          int    `validate:"gte=0"`
	PasswordHash string
	AvatarKey    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries the fields PATCH /users/me may change. Pointers
// distinguish absent fields from zero values; only present fields are
// applied.
type UserUpdate struct {
	Name     *string
	Email    *string
	Age      *int
	Password *string
}

// UserAllowedUpdates is the static allow-list of mutable user fields.
var UserAllowedUpdates = []string{"age", "name", "email", "password"}
