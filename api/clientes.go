package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/construsys/construtora/internal/validate"
	"github.com/construsys/construtora/pkg/models"
	"github.com/construsys/construtora/pkg/repository"
)

type ClientesHandler struct {
	repo      repository.ClienteRepo
	validator *validate.Validator
}

func NewClientesHandler(repo repository.ClienteRepo, v *validate.Validator) *ClientesHandler {
	return &ClientesHandler{repo: repo, validator: v}
}

func (h *ClientesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	var c models.Cliente
	if err := json.Unmarshal(body, &c); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	ctx := r.Context()
	if err := h.validator.Check(ctx, "cliente_create", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados incompletos. Todos os campos são obrigatórios.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	c.IDCliente = 0
	if _, err := h.repo.CreateCliente(ctx, &c); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, "CPF/CNPJ já cadastrado.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	writeData(w, http.StatusCreated, c)
}

func (h *ClientesHandler) List(w http.ResponseWriter, r *http.Request) {
	pagina, limite := pageParams(r)
	offset := (pagina - 1) * limite

	ctx := r.Context()
	clientes, err := h.repo.ListClientes(ctx, limite, offset)
	if err != nil {
		writeServerError(w, "Erro interno ao listar clientes.", err)
		return
	}
	total, err := h.repo.CountClientes(ctx)
	if err != nil {
		writeServerError(w, "Erro interno ao listar clientes.", err)
		return
	}

	if clientes == nil {
		clientes = []models.Cliente{}
	}

	writeList(w, clientes, newListMeta(total, pagina, limite))
}

func (h *ClientesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	cliente, err := h.repo.GetCliente(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao buscar cliente.", err)
		return
	}
	if cliente == nil {
		writeError(w, http.StatusNotFound, "Cliente não encontrado.")
		return
	}

	writeData(w, http.StatusOK, cliente)
}

func (h *ClientesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	ctx := r.Context()
	cliente, err := h.repo.GetCliente(ctx, id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}
	if cliente == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Cliente com ID %d não encontrado para atualização.", id))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	// partial merge: only fields present in the payload overwrite the row
	if err := json.Unmarshal(body, cliente); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	cliente.IDCliente = id

	if err := h.validator.Check(ctx, "cliente_update", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados inválidos para atualização.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	if err := h.repo.UpdateCliente(ctx, cliente); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, "CPF/CNPJ já cadastrado em outro cliente.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	writeData(w, http.StatusOK, cliente)
}

func (h *ClientesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	rows, err := h.repo.DeleteCliente(r.Context(), id)
	if err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindForeignKey {
			writeError(w, http.StatusBadRequest, "Não é possível excluir: O cliente está associado a uma ou mais obras.")
			return
		}
		writeServerError(w, "Erro interno ao processar a exclusão.", err)
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Cliente com ID %d não encontrado para exclusão.", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
