package service

import (
	"context"
	"errors"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/models"
	"github.com/Dan9191/task-service/internal/repository"
	"github.com/Dan9191/task-service/internal/validation"
)

// ListTasks returns every task ordered by id. No ownership filter is applied,
// whoever the caller is.
func (s *Service) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return tasks, nil
}

// GetTask returns a single task
func (s *Service) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, taskNotFound(id)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return task, nil
}

// CreateTask validates the payload and stores a new task. Any existing user may
// be named as owner.
func (s *Service) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	patch, err := validation.ValidateTaskInput(ctx, s.repo, in, true, true)
	if err != nil {
		return nil, err
	}

	task := &models.Task{Status: models.StatusNotDone}
	patch.Apply(task)

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.CreateTask(ctx, task)
	})
	if err != nil {
		return nil, storageErr(err, "")
	}

	s.log.Infof("Task %d created for user %d", task.ID, task.OwnerID)
	return task, nil
}

// UpdateTask overwrites only the fields present in the payload
func (s *Service) UpdateTask(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	if _, err := s.GetTask(ctx, id); err != nil {
		return nil, err
	}

	patch, err := validation.ValidateTaskInput(ctx, s.repo, in, false, in.OwnerID.Present)
	if err != nil {
		return nil, err
	}

	var task *models.Task
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		current, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(current)
		task = current
		return tx.UpdateTask(ctx, current)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, taskNotFound(id)
	}
	if err != nil {
		return nil, storageErr(err, "")
	}

	s.log.Infof("Task %d updated", id)
	return task, nil
}

// DeleteTask removes a single task
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.DeleteTask(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return taskNotFound(id)
	}
	if err != nil {
		return apperr.Storage(err)
	}

	s.log.Infof("Task %d deleted", id)
	return nil
}

func taskNotFound(id int64) error {
	return apperr.NotFound("Task with id %d not found", id)
}
