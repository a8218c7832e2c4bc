package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/construsys/construtora/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ConstraintKind identifies the class of storage constraint that rejected a
// write. Handlers branch on this closed set instead of inspecting raw driver
// error codes.
type ConstraintKind int

const (
	// KindUnique means a UNIQUE column already holds the written value.
	KindUnique ConstraintKind = iota + 1
	// KindForeignKey means a referenced row does not exist, or a deleted
	// row is still referenced by a dependent one.
	KindForeignKey
)

// ConstraintError is the typed translation of a storage-level constraint
// violation. Field names the offending column for unique violations; it is
// empty for foreign-key violations (SQLite does not report the column).
type ConstraintError struct {
	Kind  ConstraintKind
	Field string
	Err   error
}

func (e *ConstraintError) Error() string {
	switch e.Kind {
	case KindUnique:
		return fmt.Sprintf("unique constraint violated on %s", e.Field)
	case KindForeignKey:
		return "foreign key constraint violated"
	}
	return "constraint violated"
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// AsConstraint unwraps err into a *ConstraintError when it is one.
func AsConstraint(err error) (*ConstraintError, bool) {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ObraFilter narrows ListObras/CountObras. Zero values mean "no filter".
type ObraFilter struct {
	Status    string
	IDCliente int64
}

type ClienteRepo interface {
	CreateCliente(ctx context.Context, c *models.Cliente) (int64, error)
	GetCliente(ctx context.Context, id int64) (*models.Cliente, error)
	ListClientes(ctx context.Context, limit, offset int) ([]models.Cliente, error)
	CountClientes(ctx context.Context) (int64, error)
	UpdateCliente(ctx context.Context, c *models.Cliente) error
	DeleteCliente(ctx context.Context, id int64) (int64, error)
}

type EngenheiroRepo interface {
	CreateEngenheiro(ctx context.Context, e *models.Engenheiro) (int64, error)
	GetEngenheiro(ctx context.Context, id int64) (*models.Engenheiro, error)
	ListEngenheiros(ctx context.Context, limit, offset int) ([]models.Engenheiro, error)
	CountEngenheiros(ctx context.Context) (int64, error)
	UpdateEngenheiro(ctx context.Context, e *models.Engenheiro) error
	DeleteEngenheiro(ctx context.Context, id int64) (int64, error)
}

type EmpreiteiraRepo interface {
	CreateEmpreiteira(ctx context.Context, e *models.Empreiteira) (int64, error)
	GetEmpreiteira(ctx context.Context, id int64) (*models.Empreiteira, error)
	ListEmpreiteiras(ctx context.Context, limit, offset int) ([]models.Empreiteira, error)
	CountEmpreiteiras(ctx context.Context) (int64, error)
	UpdateEmpreiteira(ctx context.Context, e *models.Empreiteira) error
	DeleteEmpreiteira(ctx context.Context, id int64) (int64, error)
}

type TrabalhadorRepo interface {
	CreateTrabalhador(ctx context.Context, t *models.Trabalhador) (int64, error)
	GetTrabalhador(ctx context.Context, id int64) (*models.Trabalhador, error)
	ListTrabalhadores(ctx context.Context, idGerente *int64, limit, offset int) ([]models.Trabalhador, error)
	CountTrabalhadores(ctx context.Context, idGerente *int64) (int64, error)
	UpdateTrabalhador(ctx context.Context, t *models.Trabalhador) error
	DeleteTrabalhador(ctx context.Context, id int64) (int64, error)
}

type ObraRepo interface {
	CreateObra(ctx context.Context, o *models.Obra) (int64, error)
	// GetObra loads the obra with its cliente and engenheiro relations.
	GetObra(ctx context.Context, id int64) (*models.Obra, error)
	ListObras(ctx context.Context, f ObraFilter, limit, offset int) ([]models.Obra, error)
	CountObras(ctx context.Context, f ObraFilter) (int64, error)
	UpdateObra(ctx context.Context, o *models.Obra) error
	DeleteObra(ctx context.Context, id int64) (int64, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	// GetUserByEmail includes the password hash (needed for login).
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
