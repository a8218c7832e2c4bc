package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/construsys/construtora/pkg/models"
	"github.com/construsys/construtora/pkg/repository"
)

const obraColumns = `idObra, idCliente, idEngenheiro, tipoobra, enderecoobra, dataInicio, prevTermino, valorTotal, formaPagamento, status, alvarasLicencas, contrato, criadoEm, atualizadoEm`

func (r *SQLiteRepo) CreateObra(ctx context.Context, o *models.Obra) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("obra is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO obras (idCliente, idEngenheiro, tipoobra, enderecoobra, dataInicio, prevTermino, valorTotal, formaPagamento, status, alvarasLicencas, contrato, criadoEm, atualizadoEm) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.IDCliente, o.IDEngenheiro, o.Tipoobra, o.Enderecoobra, o.DataInicio, o.PrevTermino, o.ValorTotal, o.FormaPagamento, o.Status, joinList(o.AlvarasLicencas), nullableString(o.Contrato), ts, ts)
	if err != nil {
		return 0, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	o.IDObra = id
	o.CriadoEm = ts
	o.AtualizadoEm = ts
	return id, nil
}

// GetObra loads the obra together with its cliente and engenheiro rows.
func (r *SQLiteRepo) GetObra(ctx context.Context, id int64) (*models.Obra, error) {
	row := r.conn.QueryRow(ctx, `SELECT o.idObra, o.idCliente, o.idEngenheiro, o.tipoobra, o.enderecoobra, o.dataInicio, o.prevTermino, o.valorTotal, o.formaPagamento, o.status, o.alvarasLicencas, o.contrato, o.criadoEm, o.atualizadoEm,
		c.idCliente, c.nome, c.endereco, c.telefone, c.cpfCnpj, c.rgIe, c.criadoEm, c.atualizadoEm,
		e.idEngenheiro, e.nome, e.telefone, e.endereco, e.crea, e.certificacoesAdicionais, e.criadoEm, e.atualizadoEm
		FROM obras o
		JOIN clientes c ON c.idCliente = o.idCliente
		JOIN engenheiros e ON e.idEngenheiro = o.idEngenheiro
		WHERE o.idObra = ?`, id)

	var o models.Obra
	var alvaras, contrato sql.NullString
	var c models.Cliente
	var e models.Engenheiro
	var certs sql.NullString
	err := row.Scan(
		&o.IDObra, &o.IDCliente, &o.IDEngenheiro, &o.Tipoobra, &o.Enderecoobra, &o.DataInicio, &o.PrevTermino, &o.ValorTotal, &o.FormaPagamento, &o.Status, &alvaras, &contrato, &o.CriadoEm, &o.AtualizadoEm,
		&c.IDCliente, &c.Nome, &c.Endereco, &c.Telefone, &c.CpfCnpj, &c.RgIe, &c.CriadoEm, &c.AtualizadoEm,
		&e.IDEngenheiro, &e.Nome, &e.Telefone, &e.Endereco, &e.Crea, &certs, &e.CriadoEm, &e.AtualizadoEm,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if alvaras.Valid {
		o.AlvarasLicencas = splitList(alvaras.String)
	}
	if contrato.Valid {
		o.Contrato = &contrato.String
	}
	if certs.Valid {
		e.CertificacoesAdicionais = splitList(certs.String)
	}
	o.Cliente = &c
	o.Engenheiro = &e

	return &o, nil
}

func (r *SQLiteRepo) ListObras(ctx context.Context, f repository.ObraFilter, limit, offset int) ([]models.Obra, error) {
	limit, offset = clampPage(limit, offset)

	where, args := obraWhere(f)
	q := `SELECT ` + obraColumns + ` FROM obras` + where + ` ORDER BY idObra LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Obra
	for rows.Next() {
		var o models.Obra
		var alvaras, contrato sql.NullString
		if err := rows.Scan(&o.IDObra, &o.IDCliente, &o.IDEngenheiro, &o.Tipoobra, &o.Enderecoobra, &o.DataInicio, &o.PrevTermino, &o.ValorTotal, &o.FormaPagamento, &o.Status, &alvaras, &contrato, &o.CriadoEm, &o.AtualizadoEm); err != nil {
			return nil, err
		}

		if alvaras.Valid {
			o.AlvarasLicencas = splitList(alvaras.String)
		}
		if contrato.Valid {
			o.Contrato = &contrato.String
		}

		out = append(out, o)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountObras(ctx context.Context, f repository.ObraFilter) (int64, error) {
	where, args := obraWhere(f)
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM obras`+where, args...)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) UpdateObra(ctx context.Context, o *models.Obra) error {
	if o == nil {
		return fmt.Errorf("obra is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx, `UPDATE obras SET idCliente = ?, idEngenheiro = ?, tipoobra = ?, enderecoobra = ?, dataInicio = ?, prevTermino = ?, valorTotal = ?, formaPagamento = ?, status = ?, alvarasLicencas = ?, contrato = ?, atualizadoEm = ? WHERE idObra = ?`,
		o.IDCliente, o.IDEngenheiro, o.Tipoobra, o.Enderecoobra, o.DataInicio, o.PrevTermino, o.ValorTotal, o.FormaPagamento, o.Status, joinList(o.AlvarasLicencas), nullableString(o.Contrato), ts, o.IDObra)
	if err != nil {
		return translateErr(err)
	}

	o.AtualizadoEm = ts
	return nil
}

func (r *SQLiteRepo) DeleteObra(ctx context.Context, id int64) (int64, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM obras WHERE idObra = ?`, id)
	if err != nil {
		return 0, translateErr(err)
	}
	return res.RowsAffected()
}

func obraWhere(f repository.ObraFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.IDCliente > 0 {
		conds = append(conds, "idCliente = ?")
		args = append(args, f.IDCliente)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
