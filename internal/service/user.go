// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound      = errors.New("could not locate user in database")
	ErrDuplicateUsername = errors.New("found duplicate username in database")
)

// UserRepository defines the persistence operations the service relies on.
// Implemented by *repository.Repository; tests substitute an in-memory fake.
type UserRepository interface {
	CreateUser(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserService handles user business logic.
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// CheckUsernameAvailability reports whether a username is already taken.
// Note the inverted predicate: true means the name is in use.
func (s *UserService) CheckUsernameAvailability(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return true, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// AddUser creates a new user with the given username.
// The availability check runs before the insert; a unique-violation on the
// insert itself (two concurrent creates racing past the check) surfaces as
// the same duplicate error.
func (s *UserService) AddUser(ctx context.Context, username string) (*model.User, error) {
	taken, err := s.CheckUsernameAvailability(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateUsername
	}

	user, err := s.repo.CreateUser(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to add user: %w", err)
	}

	s.logger.Info("user_created", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// UpdateUser replaces the username of an existing user.
// Existence is validated first, then uniqueness of the new name against any
// other user; a user may keep its current name.
func (s *UserService) UpdateUser(ctx context.Context, id int64, username string) (*model.User, error) {
	if _, err := s.repo.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	owner, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}
	if err == nil && owner.ID != id {
		return nil, ErrDuplicateUsername
	}

	updated, err := s.repo.UpdateUser(ctx, &model.User{ID: id, Username: username})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user_updated", "user_id", updated.ID, "username", updated.Username)

	return updated, nil
}

// DeleteUser removes a user by ID.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user_deleted", "user_id", id)

	return nil
}
