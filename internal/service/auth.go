package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// FieldValidator enforces field-level constraints before any write.
type FieldValidator interface {
	Struct(s any) error
	Var(field string, value any, tag string) error
}

// RegisterInput carries the fields accepted by POST /users.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Age      int    `validate:"gte=0"`
	Password string `validate:"required,min=7,nopassword"`
}

// Auth handles registration, login and token revocation.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	hasher       PasswordHasher
	validator    FieldValidator
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	hasher PasswordHasher,
	validator FieldValidator,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		hasher:       hasher,
		validator:    validator,
		logger:       logger,
	}
}

// Register creates a user and issues their first token.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (model.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Password = strings.TrimSpace(in.Password)

	if err := a.validator.Struct(in); err != nil {
		return model.User{}, "", err
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("auth service: email already taken", "email", in.Email)
			return model.User{}, "", err
		}
		a.logger.Error("auth service: failed to create user", "error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("auth service: failed to issue token", "user_id", user.ID, "error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("auth service: user registered", "user_id", user.ID)

	return user, token, nil
}

// Login verifies credentials and issues a new token. Unknown email and
// wrong password fail identically.
func (a *Auth) Login(ctx context.Context, email, plaintext string) (model.User, string, error) {
	user, err := a.findByCredentials(ctx, email, plaintext)
	if err != nil {
		return model.User{}, "", err
	}

	token, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.Error("auth service: failed to issue token", "user_id", user.ID, "error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Logout removes the presented token from the caller's active set.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	return a.tokenService.Revoke(ctx, userID, token)
}

// LogoutAll clears the caller's entire active-token set.
func (a *Auth) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return a.tokenService.RevokeAll(ctx, userID)
}

func (a *Auth) findByCredentials(ctx context.Context, email, plaintext string) (model.User, error) {
	user, err := a.userStore.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("auth service: failed to get user by email", "error", err.Error())
		}
		return model.User{}, model.ErrInvalidCredentials
	}

	if !a.hasher.Verify(plaintext, user.PasswordHash) {
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}
