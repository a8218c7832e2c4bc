package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/construsys/construtora/pkg/models"
)

func (r *SQLiteRepo) CreateEmpreiteira(ctx context.Context, e *models.Empreiteira) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("empreiteira is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO empreiteiras (cnpjCpf, nome, telefone, email, fundacao, licencas, criadoEm, atualizadoEm) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.CnpjCpf, e.Nome, e.Telefone, e.Email, nullableString(e.Fundacao), joinList(e.Licencas), ts, ts)
	if err != nil {
		return 0, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	e.IDEmp = id
	e.CriadoEm = ts
	e.AtualizadoEm = ts
	return id, nil
}

func (r *SQLiteRepo) GetEmpreiteira(ctx context.Context, id int64) (*models.Empreiteira, error) {
	row := r.conn.QueryRow(ctx, `SELECT idEmp, cnpjCpf, nome, telefone, email, fundacao, licencas, criadoEm, atualizadoEm FROM empreiteiras WHERE idEmp = ?`, id)
	e, err := scanEmpreiteira(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return e, nil
}

func (r *SQLiteRepo) ListEmpreiteiras(ctx context.Context, limit, offset int) ([]models.Empreiteira, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.conn.QueryRows(ctx, `SELECT idEmp, cnpjCpf, nome, telefone, email, fundacao, licencas, criadoEm, atualizadoEm FROM empreiteiras ORDER BY idEmp LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Empreiteira
	for rows.Next() {
		e, err := scanEmpreiteira(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *e)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountEmpreiteiras(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM empreiteiras`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) UpdateEmpreiteira(ctx context.Context, e *models.Empreiteira) error {
	if e == nil {
		return fmt.Errorf("empreiteira is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE empreiteiras SET cnpjCpf = ?, nome = ?, telefone = ?, email = ?, fundacao = ?, licencas = ?, atualizadoEm = ? WHERE idEmp = ?`,
		e.CnpjCpf, e.Nome, e.Telefone, e.Email, nullableString(e.Fundacao), joinList(e.Licencas), ts, e.IDEmp)
	if err != nil {
		return translateErr(err)
	}

	e.AtualizadoEm = ts
	return nil
}

func (r *SQLiteRepo) DeleteEmpreiteira(ctx context.Context, id int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM empreiteiras WHERE idEmp = ?`, id)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}

func scanEmpreiteira(scan func(dest ...any) error) (*models.Empreiteira, error) {
	var e models.Empreiteira
	var fundacao, licencas sql.NullString
	if err := scan(&e.IDEmp, &e.CnpjCpf, &e.Nome, &e.Telefone, &e.Email, &fundacao, &licencas, &e.CriadoEm, &e.AtualizadoEm); err != nil {
		return nil, err
	}

	if fundacao.Valid {
		e.Fundacao = &fundacao.String
	}
	if licencas.Valid {
		e.Licencas = splitList(licencas.String)
	}

	return &e, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
