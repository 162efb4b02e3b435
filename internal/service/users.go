package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/models"
	"github.com/Dan9191/task-service/internal/repository"
	"github.com/Dan9191/task-service/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// SetPassword replaces the password hash of user. bcrypt only accepts
// passwords up to 72 bytes; longer ones are a validation failure.
func (s *Service) SetPassword(user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return apperr.Validation(apperr.ErrInvalidInput, "Password is too long")
	}
	if err != nil {
		return apperr.Storage(fmt.Errorf("failed to hash password: %w", err))
	}
	user.PasswordHash = string(hashedPassword)
	return nil
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, in models.UserInput) (*models.UserDetail, error) {
	patch, err := validation.ValidateUserInput(ctx, s.repo, in, true)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: *patch.Username}
	if err := s.SetPassword(user, *patch.Password); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, storageErr(err, user.Username)
	}

	s.log.Infof("User registered: %s", user.Username)
	detail := models.NewUserDetail(user, nil)
	return &detail, nil
}

// VerifyCredentials returns the user matching username and password. Unknown
// users and wrong passwords fail identically.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.FindUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperr.InvalidCredentials()
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.InvalidCredentials()
	}
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, in models.LoginInput) (string, error) {
	username, password, err := validation.ValidateLogin(in)
	if err != nil {
		return "", err
	}

	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperr.Storage(err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return token, nil
}

// ListUsers returns every user without nested tasks
func (s *Service) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, models.UserListItem{ID: u.ID, Username: u.Username})
	}
	return items, nil
}

// GetUser returns a user with its tasks ordered by id
func (s *Service) GetUser(ctx context.Context, id int64) (*models.UserDetail, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, user)
}

// UpdateUser replaces the username and password of a user. Uniqueness is only
// checked when the username actually changes.
func (s *Service) UpdateUser(ctx context.Context, id int64, in models.UserInput) (*models.UserDetail, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	name, isString := validation.StringValue(in.Username.Value)
	checkUnique := in.Username.Present && !(isString && name == user.Username)
	patch, err := validation.ValidateUserInput(ctx, s.repo, in, checkUnique)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		if err := s.SetPassword(user, *patch.Password); err != nil {
			return nil, err
		}
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.UpdateUser(ctx, user)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, userNotFound(id)
	}
	if err != nil {
		return nil, storageErr(err, user.Username)
	}

	s.log.Infof("User %d updated", user.ID)
	return s.detail(ctx, user)
}

// DeleteUser removes a user and every task it owns
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		return tx.DeleteUser(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return userNotFound(id)
	}
	if err != nil {
		return apperr.Storage(err)
	}

	s.log.Infof("User %d deleted", id)
	return nil
}

func (s *Service) findUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, userNotFound(id)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return user, nil
}

func (s *Service) detail(ctx context.Context, user *models.User) (*models.UserDetail, error) {
	tasks, err := s.repo.ListTasksByOwner(ctx, user.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	d := models.NewUserDetail(user, tasks)
	return &d, nil
}

func userNotFound(id int64) error {
	return apperr.NotFound("User with id %d not found", id)
}
