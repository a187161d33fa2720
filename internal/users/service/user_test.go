package service

import (
	"context"
	"strings"
	"testing"

	userserrors "roomly/internal/users/errors"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type mockUserRepo struct {
	createFn       func(ctx context.Context, user *model.User) error
	findByIDFn     func(ctx context.Context, id string) (*model.User, error)
	findByNameFn   func(ctx context.Context, name string) ([]*model.User, error)
	findAllFn      func(ctx context.Context) ([]*model.User, error)
	ensureExistsFn func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByName(ctx context.Context, name string) ([]*model.User, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) EnsureExists(ctx context.Context, id string) error {
	if m.ensureExistsFn != nil {
		return m.ensureExistsFn(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.FormatJSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func TestCreateUser(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}
	svc := NewUserService(repo, testConfig())

	user, err := svc.Create(context.Background(), "  Ada   Lovelace ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created == nil {
		t.Fatal("user was not persisted")
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("name = %q, want normalized %q", user.Name, "Ada Lovelace")
	}
	if user.ID == "" {
		t.Error("user ID was not assigned")
	}
	if !strings.HasPrefix(user.Email, "ada.lovelace.") || !strings.HasSuffix(user.Email, "@example.com") {
		t.Errorf("email = %q, want ada.lovelace.<timestamp>@example.com", user.Email)
	}
}

func TestCreateUserNameRequired(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, testConfig())

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(context.Background(), name); err == nil {
			t.Errorf("Create(%q) error = nil, want invalid input", name)
		}
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicate
		},
	}
	svc := NewUserService(repo, testConfig())

	_, err := svc.Create(context.Background(), "Ada")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Errorf("Create() error = %v, want conflict", err)
	}
}

func TestGetUserByID(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if id == "u1" {
				return &model.User{ID: "u1", Name: "Ada"}, nil
			}
			return nil, userserrors.ErrNotFound
		},
	}
	svc := NewUserService(repo, testConfig())

	user, err := svc.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("name = %q, want Ada", user.Name)
	}

	_, err = svc.GetByID(context.Background(), "missing")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("GetByID(missing) error = %v, want not found", err)
	}

	if _, err := svc.GetByID(context.Background(), ""); err == nil {
		t.Error("GetByID(\"\") error = nil, want invalid input")
	}
}

func TestFindUsers(t *testing.T) {
	repo := &mockUserRepo{
		findByNameFn: func(ctx context.Context, name string) ([]*model.User, error) {
			return []*model.User{{ID: "u1", Name: name}}, nil
		},
		findAllFn: func(ctx context.Context) ([]*model.User, error) {
			return []*model.User{{ID: "u1"}, {ID: "u2"}}, nil
		},
	}
	svc := NewUserService(repo, testConfig())

	byName, err := svc.Find(context.Background(), "Ada")
	if err != nil {
		t.Fatalf("Find(Ada) error = %v", err)
	}
	if len(byName) != 1 {
		t.Errorf("len(byName) = %d, want 1", len(byName))
	}

	all, err := svc.Find(context.Background(), "")
	if err != nil {
		t.Fatalf("Find(\"\") error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}
}
