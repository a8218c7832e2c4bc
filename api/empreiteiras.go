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

type EmpreiteirasHandler struct {
	repo      repository.EmpreiteiraRepo
	validator *validate.Validator
}

func NewEmpreiteirasHandler(repo repository.EmpreiteiraRepo, v *validate.Validator) *EmpreiteirasHandler {
	return &EmpreiteirasHandler{repo: repo, validator: v}
}

// empreiteiras carry two unique columns, so the conflict message names the
// offending one.
func empreiteiraConflictMessage(field, suffix string) string {
	if field == "email" {
		return "Este email já está em uso" + suffix
	}
	return "CNPJ/CPF já cadastrado" + suffix
}

func (h *EmpreiteirasHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	var e models.Empreiteira
	if err := json.Unmarshal(body, &e); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	ctx := r.Context()
	if err := h.validator.Check(ctx, "empreiteira_create", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados incompletos. Todos os campos são obrigatórios.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	e.IDEmp = 0
	if _, err := h.repo.CreateEmpreiteira(ctx, &e); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, empreiteiraConflictMessage(ce.Field, "."))
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	writeData(w, http.StatusCreated, e)
}

func (h *EmpreiteirasHandler) List(w http.ResponseWriter, r *http.Request) {
	pagina, limite := pageParams(r)
	offset := (pagina - 1) * limite

	ctx := r.Context()
	empreiteiras, err := h.repo.ListEmpreiteiras(ctx, limite, offset)
	if err != nil {
		writeServerError(w, "Erro interno ao listar empreiteiras.", err)
		return
	}
	total, err := h.repo.CountEmpreiteiras(ctx)
	if err != nil {
		writeServerError(w, "Erro interno ao listar empreiteiras.", err)
		return
	}

	if empreiteiras == nil {
		empreiteiras = []models.Empreiteira{}
	}

	writeList(w, empreiteiras, newListMeta(total, pagina, limite))
}

func (h *EmpreiteirasHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	empreiteira, err := h.repo.GetEmpreiteira(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao buscar empreiteira.", err)
		return
	}
	if empreiteira == nil {
		writeError(w, http.StatusNotFound, "Empreiteira não encontrada.")
		return
	}

	writeData(w, http.StatusOK, empreiteira)
}

func (h *EmpreiteirasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	ctx := r.Context()
	empreiteira, err := h.repo.GetEmpreiteira(ctx, id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}
	if empreiteira == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Empreiteira com ID %d não encontrada para atualização.", id))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	if err := json.Unmarshal(body, empreiteira); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	empreiteira.IDEmp = id

	if err := h.validator.Check(ctx, "empreiteira_update", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados inválidos para atualização.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	if err := h.repo.UpdateEmpreiteira(ctx, empreiteira); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, empreiteiraConflictMessage(ce.Field, " em outra empreiteira."))
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	writeData(w, http.StatusOK, empreiteira)
}

func (h *EmpreiteirasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	rows, err := h.repo.DeleteEmpreiteira(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a exclusão.", err)
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Empreiteira com ID %d não encontrada para exclusão.", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
