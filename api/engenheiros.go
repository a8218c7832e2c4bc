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

type EngenheirosHandler struct {
	repo      repository.EngenheiroRepo
	validator *validate.Validator
}

func NewEngenheirosHandler(repo repository.EngenheiroRepo, v *validate.Validator) *EngenheirosHandler {
	return &EngenheirosHandler{repo: repo, validator: v}
}

func (h *EngenheirosHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	var e models.Engenheiro
	if err := json.Unmarshal(body, &e); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	ctx := r.Context()
	if err := h.validator.Check(ctx, "engenheiro_create", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados incompletos. Todos os campos são obrigatórios.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	e.IDEngenheiro = 0
	if _, err := h.repo.CreateEngenheiro(ctx, &e); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, "CREA já cadastrado.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	writeData(w, http.StatusCreated, e)
}

func (h *EngenheirosHandler) List(w http.ResponseWriter, r *http.Request) {
	pagina, limite := pageParams(r)
	offset := (pagina - 1) * limite

	ctx := r.Context()
	engenheiros, err := h.repo.ListEngenheiros(ctx, limite, offset)
	if err != nil {
		writeServerError(w, "Erro interno ao listar engenheiros.", err)
		return
	}
	total, err := h.repo.CountEngenheiros(ctx)
	if err != nil {
		writeServerError(w, "Erro interno ao listar engenheiros.", err)
		return
	}

	if engenheiros == nil {
		engenheiros = []models.Engenheiro{}
	}

	writeList(w, engenheiros, newListMeta(total, pagina, limite))
}

func (h *EngenheirosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	engenheiro, err := h.repo.GetEngenheiro(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao buscar engenheiro.", err)
		return
	}
	if engenheiro == nil {
		writeError(w, http.StatusNotFound, "Engenheiro não encontrado.")
		return
	}

	writeData(w, http.StatusOK, engenheiro)
}

func (h *EngenheirosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	ctx := r.Context()
	engenheiro, err := h.repo.GetEngenheiro(ctx, id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}
	if engenheiro == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Engenheiro com ID %d não encontrado para atualização.", id))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	if err := json.Unmarshal(body, engenheiro); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	engenheiro.IDEngenheiro = id

	if err := h.validator.Check(ctx, "engenheiro_update", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados inválidos para atualização.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	if err := h.repo.UpdateEngenheiro(ctx, engenheiro); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, "CREA já cadastrado em outro engenheiro.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	writeData(w, http.StatusOK, engenheiro)
}

func (h *EngenheirosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	rows, err := h.repo.DeleteEngenheiro(r.Context(), id)
	if err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindForeignKey {
			writeError(w, http.StatusBadRequest, "Não é possível excluir: O engenheiro está associado a uma ou mais obras.")
			return
		}
		writeServerError(w, "Erro interno ao processar a exclusão.", err)
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Engenheiro com ID %d não encontrado para exclusão.", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
