package mock

import (
	"context"

	"github.com/construsys/construtora/pkg/models"
	"github.com/construsys/construtora/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users: &UserRepo{},
	}
}

// UserRepo keeps a single user in memory, enough for auth handler tests.
type UserRepo struct {
	Stored    *models.User
	CreateErr error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if m.Stored != nil && m.Stored.Email == u.Email {
		return 0, &repository.ConstraintError{Kind: repository.KindUnique, Field: "email"}
	}
	role := u.Role
	if role == "" {
		role = "viewer"
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash, Role: role}
	return 1, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}
