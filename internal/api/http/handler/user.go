package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// UserService handles profile and avatar operations.
type UserService interface {
	Get(ctx context.Context, userID uuid.UUID) (model.User, error)
	Update(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (model.User, error)
	Delete(ctx context.Context, userID uuid.UUID) (model.User, error)
	SetAvatar(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) error
	GetAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
	DeleteAvatar(ctx context.Context, userID uuid.UUID) error
}

// User exposes HTTP endpoints for the caller's own profile.
type User struct {
	service        UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler instance.
func NewUser(service UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{service: service, contextManager: contextManager, logger: logger}
}

// Me handles GET /users/me.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserView(user))
}

// UpdateMe handles PATCH /users/me. Any field outside the allow-list
// rejects the whole request before a single mutation is applied.
func (h *User) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	raw, err := decodeAllowed(r, model.UserAllowedUpdates)
	if err != nil {
		writeError(w, err)
		return
	}

	var update model.UserUpdate
	if update.Name, err = unmarshalField[string](raw, "name"); err != nil {
		writeError(w, err)
		return
	}
	if update.Email, err = unmarshalField[string](raw, "email"); err != nil {
		writeError(w, err)
		return
	}
	if update.Age, err = unmarshalField[int](raw, "age"); err != nil {
		writeError(w, err)
		return
	}
	if update.Password, err = unmarshalField[string](raw, "password"); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Update(r.Context(), userID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserView(user))
}

// DeleteMe handles DELETE /users/me and returns the deleted profile.
func (h *User) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	user, err := h.service.Delete(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserView(user))
}

// SetAvatar handles POST /users/me/avatar.
func (h *User) SetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	file, filename, err := formImage(w, r, "avatar")
	if err != nil {
		writeError(w, err)
		return
	}
	defer file.Close()

	if err := h.service.SetAvatar(r.Context(), userID, filename, file); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// GetAvatar handles GET /users/me/avatar and serves the stored PNG.
func (h *User) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	avatar, err := h.service.GetAvatar(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer avatar.Close()

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, avatar); err != nil {
		h.logger.Error("user handler: failed to stream avatar", "error", err.Error())
	}
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *User) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteAvatar(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
