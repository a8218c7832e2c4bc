package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/construsys/construtora/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	role := u.Role
	if role == "" {
		role = "viewer"
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO users (name, email, password, role, criadoEm, atualizadoEm) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, role, ts, ts)
	if err != nil {
		return 0, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	u.ID = id
	u.Role = role
	u.CriadoEm = ts
	u.AtualizadoEm = ts
	return id, nil
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password, role, criadoEm, atualizadoEm FROM users WHERE id = ?`, id)
	return scanUser(row.Scan)
}

// GetUserByEmail includes the password hash; callers needing the record for
// display should zero it out.
func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, email, password, role, criadoEm, atualizadoEm FROM users WHERE email = ?`, email)
	return scanUser(row.Scan)
}

func scanUser(scan func(dest ...any) error) (*models.User, error) {
	var u models.User
	if err := scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CriadoEm, &u.AtualizadoEm); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &u, nil
}
