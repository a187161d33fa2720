package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	userserrors "roomly/internal/users/errors"
	"roomly/internal/users/repository"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, name string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Find(ctx context.Context, name string) ([]*model.User, error)
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *userService) Create(ctx context.Context, name string) (*model.User, error) {
	name = sanitizer.NormalizeName(name)
	if name == "" {
		return nil, apperrors.InvalidInput("Name is required")
	}

	user := &model.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: synthesizeEmail(name),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicate) {
			return nil, apperrors.Conflict("User already exists")
		}
		s.cfg.Log.Error("Failed to create user", "name", name, "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID, "name", user.Name)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) Find(ctx context.Context, name string) ([]*model.User, error) {
	var users []*model.User
	var err error

	if name != "" {
		users, err = s.repo.FindByName(ctx, sanitizer.NormalizeName(name))
	} else {
		users, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	return users, nil
}

// synthesizeEmail derives a unique placeholder address; the system has no
// real identity layer, so this only needs to look like an email.
func synthesizeEmail(name string) string {
	local := strings.ReplaceAll(strings.ToLower(name), " ", ".")
	return fmt.Sprintf("%s.%d@example.com", local, time.Now().UnixMilli())
}
