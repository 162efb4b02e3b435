package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/task-service/internal/models"
)

// CreateUser inserts a user and fills in its id
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}
	return nil
}

// GetUser retrieves a user by id
func (r *Repository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, username, password_hash FROM users WHERE id = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, id))
}

// FindUserByUsername retrieves a user by exact username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash FROM users WHERE username = $1`
	return r.scanUser(r.q.QueryRowContext(ctx, query, username))
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users ordered by id
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, username, password_hash FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UserExists reports whether a user with id exists
func (r *Repository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists int
	err := r.q.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

// UsernameTaken reports whether any user holds username
func (r *Repository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var exists int
	err := r.q.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = $1`, username).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	return true, nil
}

// UpdateUser writes username and password hash of an existing user
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET username = $1, password_hash = $2 WHERE id = $3`
	res, err := r.q.ExecContext(ctx, query, user.Username, user.PasswordHash, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", classify(err))
	}
	return rowsAffected(res)
}

// DeleteUser removes a user together with every task it owns
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE owner_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user tasks: %w", err)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return rowsAffected(res)
}
