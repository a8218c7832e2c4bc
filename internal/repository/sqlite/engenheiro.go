package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/construsys/construtora/pkg/models"
)

func (r *SQLiteRepo) CreateEngenheiro(ctx context.Context, e *models.Engenheiro) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("engenheiro is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO engenheiros (nome, telefone, endereco, crea, certificacoesAdicionais, criadoEm, atualizadoEm) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Nome, e.Telefone, e.Endereco, e.Crea, joinList(e.CertificacoesAdicionais), ts, ts)
	if err != nil {
		return 0, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	e.IDEngenheiro = id
	e.CriadoEm = ts
	e.AtualizadoEm = ts
	return id, nil
}

func (r *SQLiteRepo) GetEngenheiro(ctx context.Context, id int64) (*models.Engenheiro, error) {
	row := r.conn.QueryRow(ctx, `SELECT idEngenheiro, nome, telefone, endereco, crea, certificacoesAdicionais, criadoEm, atualizadoEm FROM engenheiros WHERE idEngenheiro = ?`, id)
	e, err := scanEngenheiro(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return e, nil
}

func (r *SQLiteRepo) ListEngenheiros(ctx context.Context, limit, offset int) ([]models.Engenheiro, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.conn.QueryRows(ctx, `SELECT idEngenheiro, nome, telefone, endereco, crea, certificacoesAdicionais, criadoEm, atualizadoEm FROM engenheiros ORDER BY idEngenheiro LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Engenheiro
	for rows.Next() {
		e, err := scanEngenheiro(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *e)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountEngenheiros(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM engenheiros`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) UpdateEngenheiro(ctx context.Context, e *models.Engenheiro) error {
	if e == nil {
		return fmt.Errorf("engenheiro is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE engenheiros SET nome = ?, telefone = ?, endereco = ?, crea = ?, certificacoesAdicionais = ?, atualizadoEm = ? WHERE idEngenheiro = ?`,
		e.Nome, e.Telefone, e.Endereco, e.Crea, joinList(e.CertificacoesAdicionais), ts, e.IDEngenheiro)
	if err != nil {
		return translateErr(err)
	}

	e.AtualizadoEm = ts
	return nil
}

func (r *SQLiteRepo) DeleteEngenheiro(ctx context.Context, id int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM engenheiros WHERE idEngenheiro = ?`, id)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}

func scanEngenheiro(scan func(dest ...any) error) (*models.Engenheiro, error) {
	var e models.Engenheiro
	var certs sql.NullString
	if err := scan(&e.IDEngenheiro, &e.Nome, &e.Telefone, &e.Endereco, &e.Crea, &certs, &e.CriadoEm, &e.AtualizadoEm); err != nil {
		return nil, err
	}

	if certs.Valid {
		e.CertificacoesAdicionais = splitList(certs.String)
	}

	return &e, nil
}
