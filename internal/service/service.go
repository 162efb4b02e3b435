package service

import (
	"errors"
	"fmt"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/Dan9191/task-service/internal/auth"
	"github.com/Dan9191/task-service/internal/config"
	"github.com/Dan9191/task-service/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	tokens *auth.TokenService
	log    *logrus.Logger
	config *config.Config

	// dummyHash is compared against when the username is unknown, so a failed
	// login costs one bcrypt comparison at the configured cost either way.
	dummyHash []byte
}

// NewService initializes a new service
func NewService(repo *repository.Repository, tokens *auth.TokenService, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("no such user"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}
	return &Service{repo: repo, tokens: tokens, log: log, config: cfg, dummyHash: dummyHash}, nil
}

// storageErr converts a failed unit of work into an application error. Constraint
// violations raced past validation are reported as the validation error they imply.
func storageErr(err error, username string) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.DuplicateUsername(username)
	case errors.Is(err, repository.ErrForeignKey):
		return apperr.Validation(apperr.ErrOwnerNotFound, "Owner does not exist")
	}
	return apperr.Storage(err)
}
