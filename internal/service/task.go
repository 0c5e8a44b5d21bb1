package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-server/internal/image"
	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
)

// Task handles owner-scoped task CRUD and task images. The owner id on
// every operation comes from the authenticated caller, never from the
// request payload.
type Task struct {
	taskStore model.TaskStore
	storage   model.Storage
	validator FieldValidator
	logger    *logger.Logger
}

func NewTask(taskStore model.TaskStore, storage model.Storage, validator FieldValidator, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		storage:   storage,
		validator: validator,
		logger:    logger,
	}
}

// Create stores a new task owned by ownerID.
func (s *Task) Create(ctx context.Context, ownerID uuid.UUID, description string, completed bool) (model.Task, error) {
	now := time.Now()
	task := model.Task{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Completed:   completed,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.validator.Struct(task); err != nil {
		return model.Task{}, err
	}

	return s.taskStore.Create(ctx, task)
}

// List returns the caller's tasks, filtered, paginated and sorted.
func (s *Task) List(ctx context.Context, ownerID uuid.UUID, opts model.TaskListOptions) ([]model.Task, error) {
	return s.taskStore.ListByOwner(ctx, ownerID, opts)
}

// Get fetches one task scoped by (id, owner).
func (s *Task) Get(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	return s.taskStore.GetByID(ctx, id, ownerID)
}

// Update applies allow-listed fields to a task the caller owns and
// rewrites the full row.
func (s *Task) Update(ctx context.Context, id, ownerID uuid.UUID, update model.TaskUpdate) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return model.Task{}, err
	}

	if update.Description != nil {
		task.Description = strings.TrimSpace(*update.Description)
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}

	if err := s.validator.Struct(task); err != nil {
		return model.Task{}, err
	}

	return s.taskStore.Update(ctx, task)
}

// Delete removes a task the caller owns, along with its stored image.
func (s *Task) Delete(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return model.Task{}, err
	}

	if task.ImageKey != nil {
		if err := s.storage.Delete(ctx, *task.ImageKey); err != nil {
			s.logger.Error("task service: failed to delete task image", "key", *task.ImageKey, "error", err.Error())
		}
	}

	if err := s.taskStore.Delete(ctx, id, ownerID); err != nil {
		return model.Task{}, err
	}

	return task, nil
}

// DeleteAll removes every task the caller owns and their images.
func (s *Task) DeleteAll(ctx context.Context, ownerID uuid.UUID) error {
	imageKeys, err := s.taskStore.ListImageKeysByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list task images: %w", err)
	}
	for _, key := range imageKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("task service: failed to delete task image", "key", key, "error", err.Error())
		}
	}

	return s.taskStore.DeleteAllByOwner(ctx, ownerID)
}

// SetImage admits, normalizes and stores an image on a task the caller
// owns.
func (s *Task) SetImage(ctx context.Context, id, ownerID uuid.UUID, filename string, r io.Reader) error {
	if err := image.CheckFilename(filename); err != nil {
		return err
	}

	png, err := image.Normalize(r)
	if err != nil {
		return err
	}

	task, err := s.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	key := taskImageKey(id)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(png)); err != nil {
		return fmt.Errorf("failed to store task image: %w", err)
	}

	task.ImageKey = &key
	if _, err := s.taskStore.Update(ctx, task); err != nil {
		return err
	}

	return nil
}

// GetImage streams the stored image of a task the caller owns.
func (s *Task) GetImage(ctx context.Context, id, ownerID uuid.UUID) (io.ReadCloser, error) {
	task, err := s.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if task.ImageKey == nil {
		return nil, model.ErrNotFound
	}

	exists, err := s.storage.Exists(ctx, *task.ImageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to stat task image: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	return s.storage.Download(ctx, *task.ImageKey)
}

// DeleteImage removes the stored image of a task the caller owns.
func (s *Task) DeleteImage(ctx context.Context, id, ownerID uuid.UUID) error {
	task, err := s.taskStore.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if task.ImageKey == nil {
		return nil
	}

	if err := s.storage.Delete(ctx, *task.ImageKey); err != nil {
		return fmt.Errorf("failed to delete task image: %w", err)
	}

	task.ImageKey = nil
	if _, err := s.taskStore.Update(ctx, task); err != nil {
		return err
	}

	return nil
}

func taskImageKey(taskID uuid.UUID) string {
	return fmt.Sprintf("tasks/%s.png", taskID)
}
