package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/image"
	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// User handles profile reads, allow-listed updates, cascading deletion
// and avatar images.
type User struct {
	userStore    model.UserStore
	taskStore    model.TaskStore
	storage      model.Storage
	tokenService *TokenService
	hasher       PasswordHasher
	validator    FieldValidator
	logger       *logger.Logger
}

func NewUser(
	userStore model.UserStore,
	taskStore model.TaskStore,
	storage model.Storage,
	tokenService *TokenService,
	hasher PasswordHasher,
	validator FieldValidator,
	logger *logger.Logger,
) *User {
	return &User{
		userStore:    userStore,
		taskStore:    taskStore,
		storage:      storage,
		tokenService: tokenService,
		hasher:       hasher,
		validator:    validator,
		logger:       logger,
	}
}

// Get returns the caller's profile.
func (s *User) Get(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.userStore.GetByID(ctx, userID)
}

// Update applies allow-listed fields to the caller's profile and rewrites
// the full row. The password is re-hashed only when the request actually
// carries a password value; unrelated updates leave the stored hash
// untouched.
func (s *User) Update(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Age != nil {
		user.Age = *update.Age
	}

	if err := s.validator.Struct(user); err != nil {
		return model.User{}, err
	}

	if update.Password != nil {
		plaintext := strings.TrimSpace(*update.Password)
		if err := s.validator.Var("password", plaintext, "required,min=7,nopassword"); err != nil {
			return model.User{}, err
		}
		hash, err := s.hasher.Hash(plaintext)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	return s.userStore.Update(ctx, user)
}

// Delete removes the caller and everything they own: task images, tasks,
// avatar, active tokens, then the user row. The sequence is explicit and
// not atomic; a failure leaves earlier steps applied.
func (s *User) Delete(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	imageKeys, err := s.taskStore.ListImageKeysByOwner(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to list task images: %w", err)
	}
	for _, key := range imageKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("user service: failed to delete task image", "key", key, "error", err.Error())
		}
	}

	if err := s.taskStore.DeleteAllByOwner(ctx, userID); err != nil {
		return model.User{}, fmt.Errorf("failed to delete tasks: %w", err)
	}

	if user.AvatarKey != nil {
		if err := s.storage.Delete(ctx, *user.AvatarKey); err != nil {
			s.logger.Error("user service: failed to delete avatar", "key", *user.AvatarKey, "error", err.Error())
		}
	}

	if err := s.tokenService.RevokeAll(ctx, userID); err != nil {
		return model.User{}, err
	}

	if err := s.userStore.Delete(ctx, userID); err != nil {
		return model.User{}, err
	}

	s.logger.Info("user service: user deleted", "user_id", userID)

	return user, nil
}

// SetAvatar admits, normalizes and stores the caller's avatar.
func (s *User) SetAvatar(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) error {
	if err := image.CheckFilename(filename); err != nil {
		return err
	}

	png, err := image.Normalize(r)
	if err != nil {
		return err
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	key := avatarKey(userID)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(png)); err != nil {
		return fmt.Errorf("failed to store avatar: %w", err)
	}

	user.AvatarKey = &key
	if _, err := s.userStore.Update(ctx, user); err != nil {
		return err
	}

	return nil
}

// GetAvatar streams the caller's avatar PNG.
func (s *User) GetAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.AvatarKey == nil {
		return nil, model.ErrNotFound
	}

	exists, err := s.storage.Exists(ctx, *user.AvatarKey)
	if err != nil {
		return nil, fmt.Errorf("failed to stat avatar: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	return s.storage.Download(ctx, *user.AvatarKey)
}

// DeleteAvatar removes the caller's avatar if one is set.
func (s *User) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.AvatarKey == nil {
		return nil
	}

	if err := s.storage.Delete(ctx, *user.AvatarKey); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}

	user.AvatarKey = nil
	if _, err := s.userStore.Update(ctx, user); err != nil {
		return err
	}

	return nil
}

func avatarKey(userID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s.png", userID)
}
