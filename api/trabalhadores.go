package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/construsys/construtora/internal/validate"
	"github.com/construsys/construtora/pkg/models"
	"github.com/construsys/construtora/pkg/repository"
)

type TrabalhadoresHandler struct {
	repo      repository.TrabalhadorRepo
	validator *validate.Validator
}

func NewTrabalhadoresHandler(repo repository.TrabalhadorRepo, v *validate.Validator) *TrabalhadoresHandler {
	return &TrabalhadoresHandler{repo: repo, validator: v}
}

func trabalhadorConflictMessage(field, suffix string) string {
	if field == "ctps" {
		return "CTPS já cadastrada" + suffix
	}
	return "CPF/CNPJ já cadastrado" + suffix
}

func (h *TrabalhadoresHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	var t models.Trabalhador
	if err := json.Unmarshal(body, &t); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	ctx := r.Context()
	if err := h.validator.Check(ctx, "trabalhador_create", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados incompletos. Todos os campos são obrigatórios.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	// advisory manager lookup for a precise message; the self-FK constraint
	// still guards the insert against races
	if t.IDGerente != nil {
		gerente, err := h.repo.GetTrabalhador(ctx, *t.IDGerente)
		if err != nil {
			writeServerError(w, "Erro interno ao processar a criação.", err)
			return
		}
		if gerente == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Gerente com ID %d não encontrado.", *t.IDGerente))
			return
		}
	}

	t.IDEmpregado = 0
	if _, err := h.repo.CreateTrabalhador(ctx, &t); err != nil {
		if ce, ok := repository.AsConstraint(err); ok {
			switch ce.Kind {
			case repository.KindUnique:
				writeError(w, http.StatusBadRequest, trabalhadorConflictMessage(ce.Field, "."))
			case repository.KindForeignKey:
				writeError(w, http.StatusBadRequest, "Gerente informado não encontrado.")
			}
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	writeData(w, http.StatusCreated, t)
}

func (h *TrabalhadoresHandler) List(w http.ResponseWriter, r *http.Request) {
	pagina, limite := pageParams(r)
	offset := (pagina - 1) * limite

	var idGerente *int64
	if raw := r.URL.Query().Get("idGerente"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "Parâmetro idGerente inválido.")
			return
		}
		idGerente = &v
	}

	ctx := r.Context()
	trabalhadores, err := h.repo.ListTrabalhadores(ctx, idGerente, limite, offset)
	if err != nil {
		writeServerError(w, "Erro interno ao listar trabalhadores.", err)
		return
	}
	total, err := h.repo.CountTrabalhadores(ctx, idGerente)
	if err != nil {
		writeServerError(w, "Erro interno ao listar trabalhadores.", err)
		return
	}

	if trabalhadores == nil {
		trabalhadores = []models.Trabalhador{}
	}

	writeList(w, trabalhadores, newListMeta(total, pagina, limite))
}

func (h *TrabalhadoresHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	trabalhador, err := h.repo.GetTrabalhador(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao buscar trabalhador.", err)
		return
	}
	if trabalhador == nil {
		writeError(w, http.StatusNotFound, "Trabalhador não encontrado.")
		return
	}

	writeData(w, http.StatusOK, trabalhador)
}

func (h *TrabalhadoresHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	ctx := r.Context()
	trabalhador, err := h.repo.GetTrabalhador(ctx, id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}
	if trabalhador == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Trabalhador com ID %d não encontrado para atualização.", id))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	// field presence decides which checks re-run on a partial update
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	if err := json.Unmarshal(body, trabalhador); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	trabalhador.IDEmpregado = id

	if err := h.validator.Check(ctx, "trabalhador_update", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados inválidos para atualização.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	if _, present := fields["idGerente"]; present && trabalhador.IDGerente != nil {
		if *trabalhador.IDGerente == id {
			writeError(w, http.StatusBadRequest, "Um trabalhador não pode ser gerente de si mesmo.")
			return
		}
		gerente, err := h.repo.GetTrabalhador(ctx, *trabalhador.IDGerente)
		if err != nil {
			writeServerError(w, "Erro interno ao processar a atualização.", err)
			return
		}
		if gerente == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Gerente com ID %d não encontrado.", *trabalhador.IDGerente))
			return
		}
	}

	if err := h.repo.UpdateTrabalhador(ctx, trabalhador); err != nil {
		if ce, ok := repository.AsConstraint(err); ok {
			switch ce.Kind {
			case repository.KindUnique:
				writeError(w, http.StatusBadRequest, trabalhadorConflictMessage(ce.Field, " em outro trabalhador."))
			case repository.KindForeignKey:
				writeError(w, http.StatusBadRequest, "Gerente informado não encontrado.")
			}
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	writeData(w, http.StatusOK, trabalhador)
}

// Delete removes the worker; subordinates survive with idGerente set to
// null by the storage rule, so a manager delete never conflicts.
func (h *TrabalhadoresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	rows, err := h.repo.DeleteTrabalhador(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a exclusão.", err)
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Trabalhador com ID %d não encontrado para exclusão.", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
