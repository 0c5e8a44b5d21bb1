package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (id, description, completed, owner_id, image_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, description, completed, owner_id, image_key, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRow(ctx, query,
		task.ID, task.Description, task.Completed, task.OwnerID, task.ImageKey,
		task.CreatedAt, task.UpdatedAt,
	).Scan(
		&savedTask.ID, &savedTask.Description, &savedTask.Completed, &savedTask.OwnerID,
		&savedTask.ImageKey, &savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (model.Task, error) {
	query := `SELECT id, description, completed, owner_id, image_key, created_at, updated_at
			  FROM tasks WHERE id = $1 AND owner_id = $2`

	var task model.Task
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&task.ID, &task.Description, &task.Completed, &task.OwnerID,
		&task.ImageKey, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts model.TaskListOptions) ([]model.Task, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, description, completed, owner_id, image_key, created_at, updated_at
		FROM tasks WHERE owner_id = $1`)

	args := []any{ownerID}
	if opts.Completed != nil {
		args = append(args, *opts.Completed)
		fmt.Fprintf(&sb, " AND completed = $%d", len(args))
	}

	// Sort column comes from the allow-list only, never from raw input.
	column, ok := model.TaskSortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := model.SortAsc
	if opts.SortDir == model.SortDesc {
		dir = model.SortDesc
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s", column, dir)

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))

		if opts.Page > 1 {
			args = append(args, opts.Limit*(opts.Page-1))
			fmt.Fprintf(&sb, " OFFSET $%d", len(args))
		}
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID, &task.Description, &task.Completed, &task.OwnerID,
			&task.ImageKey, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update rewrites the full row scoped by (id, owner_id).
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks
			  SET description = $3, completed = $4, image_key = $5, updated_at = NOW()
			  WHERE id = $1 AND owner_id = $2
			  RETURNING id, description, completed, owner_id, image_key, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Description, task.Completed, task.ImageKey,
	).Scan(
		&savedTask.ID, &savedTask.Description, &savedTask.Completed, &savedTask.OwnerID,
		&savedTask.ImageKey, &savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE owner_id = $1`
	if _, err := r.db.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("failed to delete tasks by owner: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListImageKeysByOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	const query = `SELECT image_key FROM tasks WHERE owner_id = $1 AND image_key IS NOT NULL`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task image keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
