// userservice.go
package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/models"
	"github.com/careercraft/careercraft/pkg/helper"
)

type UserService struct {
	UserRepo interfaces.CredentialRepository
	Logger   interfaces.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.CredentialRepository, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Logger:   logger,
	}
}

// RegisterUser hashes the password and adds the record via the repository.
// A duplicate username yields (false, nil): callers render the same generic
// failure as any other signup problem, so usernames cannot be enumerated.
func (s *UserService) RegisterUser(ctx context.Context, username, password, education string) (bool, error) {
	funcName := helper.GetFuncName()
	s.Logger.Info("Registering user", "func", funcName, "user", username)

	salt, digest, err := HashPassword(password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return false, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	user := models.NewUser(username, salt, digest, education)

	if err := s.UserRepo.Add(ctx, *user); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			s.Logger.Warn("Registration conflict", "func", funcName, "user", username)
			return false, nil
		}
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		return false, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", username)
	return true, nil
}

// AuthenticateUser verifies a user's credentials. Unknown username and
// wrong password are both (false, nil); the repository error path is the
// only one surfaced.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (bool, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Authenticating user", "func", funcName, "user", username)

	user, err := s.UserRepo.Get(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return false, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		return false, nil
	}

	if !VerifyPassword(user, password) {
		s.Logger.Debug("Password mismatch", "func", funcName, "user", username)
		return false, nil
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	return true, nil
}
