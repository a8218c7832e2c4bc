package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/construsys/construtora/pkg/models"
)

func (r *SQLiteRepo) CreateTrabalhador(ctx context.Context, t *models.Trabalhador) (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("trabalhador is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO trabalhadores (idGerente, nome, cpfCnpj, rgie, salario, ctps, funcao, criadoEm, atualizadoEm) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(t.IDGerente), t.Nome, t.CpfCnpj, t.Rgie, t.Salario, t.Ctps, t.Funcao, ts, ts)
	if err != nil {
		return 0, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	t.IDEmpregado = id
	t.CriadoEm = ts
	t.AtualizadoEm = ts
	return id, nil
}

func (r *SQLiteRepo) GetTrabalhador(ctx context.Context, id int64) (*models.Trabalhador, error) {
	row := r.conn.QueryRow(ctx, `SELECT idEmpregado, idGerente, nome, cpfCnpj, rgie, salario, ctps, funcao, criadoEm, atualizadoEm FROM trabalhadores WHERE idEmpregado = ?`, id)
	t, err := scanTrabalhador(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return t, nil
}

func (r *SQLiteRepo) ListTrabalhadores(ctx context.Context, idGerente *int64, limit, offset int) ([]models.Trabalhador, error) {
	limit, offset = clampPage(limit, offset)

	q := `SELECT idEmpregado, idGerente, nome, cpfCnpj, rgie, salario, ctps, funcao, criadoEm, atualizadoEm FROM trabalhadores`
	args := []any{}
	if idGerente != nil {
		q += ` WHERE idGerente = ?`
		args = append(args, *idGerente)
	}
	q += ` ORDER BY idEmpregado LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Trabalhador
	for rows.Next() {
		t, err := scanTrabalhador(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *t)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountTrabalhadores(ctx context.Context, idGerente *int64) (int64, error) {
	q := `SELECT COUNT(*) FROM trabalhadores`
	args := []any{}
	if idGerente != nil {
		q += ` WHERE idGerente = ?`
		args = append(args, *idGerente)
	}

	row := r.conn.QueryRow(ctx, q, args...)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) UpdateTrabalhador(ctx context.Context, t *models.Trabalhador) error {
	if t == nil {
		return fmt.Errorf("trabalhador is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE trabalhadores SET idGerente = ?, nome = ?, cpfCnpj = ?, rgie = ?, salario = ?, ctps = ?, funcao = ?, atualizadoEm = ? WHERE idEmpregado = ?`,
		nullableID(t.IDGerente), t.Nome, t.CpfCnpj, t.Rgie, t.Salario, t.Ctps, t.Funcao, ts, t.IDEmpregado)
	if err != nil {
		return translateErr(err)
	}

	t.AtualizadoEm = ts
	return nil
}

// DeleteTrabalhador removes the row; subordinates keep existing but their
// idGerente is set to null by the ON DELETE SET NULL rule.
func (r *SQLiteRepo) DeleteTrabalhador(ctx context.Context, id int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM trabalhadores WHERE idEmpregado = ?`, id)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}

func scanTrabalhador(scan func(dest ...any) error) (*models.Trabalhador, error) {
	var t models.Trabalhador
	var gerente sql.NullInt64
	if err := scan(&t.IDEmpregado, &gerente, &t.Nome, &t.CpfCnpj, &t.Rgie, &t.Salario, &t.Ctps, &t.Funcao, &t.CriadoEm, &t.AtualizadoEm); err != nil {
		return nil, err
	}

	if gerente.Valid {
		t.IDGerente = &gerente.Int64
	}

	return &t, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
