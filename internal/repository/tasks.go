package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/task-service/internal/models"
)

const taskColumns = `id, title, description, status, owner_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (models.Task, error) {
	var (
		t    models.Task
		desc sql.NullString
	)
	if err := s.Scan(&t.ID, &t.Title, &desc, &t.Status, &t.OwnerID); err != nil {
		return models.Task{}, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return t, nil
}

// CreateTask inserts a task and fills in its id
func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query, task.Title, task.Description, task.Status, task.OwnerID).
		Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", classify(err))
	}
	return nil
}

// GetTask retrieves a task by id
func (r *Repository) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// ListTasks returns every task ordered by id
func (r *Repository) ListTasks(ctx context.Context) ([]models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

// ListTasksByOwner returns the tasks owned by ownerID ordered by id
func (r *Repository) ListTasksByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	return r.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY id`, ownerID)
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask writes every column of an existing task
func (r *Repository) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET title = $1, description = $2, status = $3, owner_id = $4
		WHERE id = $5`
	res, err := r.q.ExecContext(ctx, query, task.Title, task.Description, task.Status, task.OwnerID, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", classify(err))
	}
	return rowsAffected(res)
}

// DeleteTask removes a task by id
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return rowsAffected(res)
}
