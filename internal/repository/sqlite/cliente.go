package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/construsys/construtora/pkg/models"
)

func (r *SQLiteRepo) CreateCliente(ctx context.Context, c *models.Cliente) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("cliente is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO clientes (nome, endereco, telefone, cpfCnpj, rgIe, criadoEm, atualizadoEm) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Nome, c.Endereco, c.Telefone, c.CpfCnpj, c.RgIe, ts, ts)
	if err != nil {
		return 0, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	c.IDCliente = id
	c.CriadoEm = ts
	c.AtualizadoEm = ts
	return id, nil
}

func (r *SQLiteRepo) GetCliente(ctx context.Context, id int64) (*models.Cliente, error) {
	row := r.conn.QueryRow(ctx, `SELECT idCliente, nome, endereco, telefone, cpfCnpj, rgIe, criadoEm, atualizadoEm FROM clientes WHERE idCliente = ?`, id)
	var c models.Cliente
	if err := row.Scan(&c.IDCliente, &c.Nome, &c.Endereco, &c.Telefone, &c.CpfCnpj, &c.RgIe, &c.CriadoEm, &c.AtualizadoEm); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}

func (r *SQLiteRepo) ListClientes(ctx context.Context, limit, offset int) ([]models.Cliente, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.conn.QueryRows(ctx, `SELECT idCliente, nome, endereco, telefone, cpfCnpj, rgIe, criadoEm, atualizadoEm FROM clientes ORDER BY idCliente LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Cliente
	for rows.Next() {
		var c models.Cliente
		if err := rows.Scan(&c.IDCliente, &c.Nome, &c.Endereco, &c.Telefone, &c.CpfCnpj, &c.RgIe, &c.CriadoEm, &c.AtualizadoEm); err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountClientes(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) UpdateCliente(ctx context.Context, c *models.Cliente) error {
	if c == nil {
		return fmt.Errorf("cliente is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE clientes SET nome = ?, endereco = ?, telefone = ?, cpfCnpj = ?, rgIe = ?, atualizadoEm = ? WHERE idCliente = ?`,
		c.Nome, c.Endereco, c.Telefone, c.CpfCnpj, c.RgIe, ts, c.IDCliente)
	if err != nil {
		return translateErr(err)
	}

	c.AtualizadoEm = ts
	return nil
}

func (r *SQLiteRepo) DeleteCliente(ctx context.Context, id int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM clientes WHERE idCliente = ?`, id)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}
