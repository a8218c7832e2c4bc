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

type ObrasHandler struct {
	repo           repository.ObraRepo
	clienteRepo    repository.ClienteRepo
	engenheiroRepo repository.EngenheiroRepo
	validator      *validate.Validator
}

func NewObrasHandler(or repository.ObraRepo, cr repository.ClienteRepo, er repository.EngenheiroRepo, v *validate.Validator) *ObrasHandler {
	return &ObrasHandler{repo: or, clienteRepo: cr, engenheiroRepo: er, validator: v}
}

// checkRelations verifies the advisory FK lookups and writes the 400 response
// itself when a referenced row is missing. The RESTRICT constraints on the
// obras table remain the authority under concurrent deletes.
func (h *ObrasHandler) checkRelations(w http.ResponseWriter, r *http.Request, idCliente, idEngenheiro int64) bool {
	ctx := r.Context()
	if idCliente > 0 {
		cliente, err := h.clienteRepo.GetCliente(ctx, idCliente)
		if err != nil {
			writeServerError(w, "Erro interno ao validar as relações da obra.", err)
			return false
		}
		if cliente == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Cliente com ID %d não encontrado.", idCliente))
			return false
		}
	}
	if idEngenheiro > 0 {
		engenheiro, err := h.engenheiroRepo.GetEngenheiro(ctx, idEngenheiro)
		if err != nil {
			writeServerError(w, "Erro interno ao validar as relações da obra.", err)
			return false
		}
		if engenheiro == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Engenheiro com ID %d não encontrado.", idEngenheiro))
			return false
		}
	}
	return true
}

func (h *ObrasHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	var o models.Obra
	if err := json.Unmarshal(body, &o); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	ctx := r.Context()
	if err := h.validator.Check(ctx, "obra_create", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados incompletos. idCliente, idEngenheiro e dados da obra são obrigatórios.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	if !h.checkRelations(w, r, o.IDCliente, o.IDEngenheiro) {
		return
	}

	o.IDObra = 0
	id, err := h.repo.CreateObra(ctx, &o)
	if err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindForeignKey {
			writeError(w, http.StatusBadRequest, "Cliente ou engenheiro informado não encontrado.")
			return
		}
		writeServerError(w, "Erro interno ao processar a criação.", err)
		return
	}

	created, err := h.repo.GetObra(ctx, id)
	if err != nil || created == nil {
		// row exists; relation load failed
		writeData(w, http.StatusCreated, o)
		return
	}

	writeData(w, http.StatusCreated, created)
}

func (h *ObrasHandler) List(w http.ResponseWriter, r *http.Request) {
	pagina, limite := pageParams(r)
	offset := (pagina - 1) * limite

	q := r.URL.Query()
	filter := repository.ObraFilter{Status: q.Get("status")}
	if raw := q.Get("idCliente"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "Parâmetro idCliente inválido.")
			return
		}
		filter.IDCliente = v
	}

	ctx := r.Context()
	obras, err := h.repo.ListObras(ctx, filter, limite, offset)
	if err != nil {
		writeServerError(w, "Erro interno ao listar obras.", err)
		return
	}
	total, err := h.repo.CountObras(ctx, filter)
	if err != nil {
		writeServerError(w, "Erro interno ao listar obras.", err)
		return
	}

	if obras == nil {
		obras = []models.Obra{}
	}

	writeList(w, obras, newListMeta(total, pagina, limite))
}

func (h *ObrasHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	obra, err := h.repo.GetObra(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao buscar obra.", err)
		return
	}
	if obra == nil {
		writeError(w, http.StatusNotFound, "Obra não encontrada.")
		return
	}

	writeData(w, http.StatusOK, obra)
}

func (h *ObrasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	ctx := r.Context()
	obra, err := h.repo.GetObra(ctx, id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}
	if obra == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Obra com ID %d não encontrada para atualização.", id))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}

	if err := json.Unmarshal(body, obra); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	obra.IDObra = id

	if err := h.validator.Check(ctx, "obra_update", body); err != nil {
		if validate.IsPayloadError(err) {
			writeError(w, http.StatusBadRequest, "Dados inválidos para atualização.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	// re-check only the relations the payload changed
	var checkCliente, checkEngenheiro int64
	if _, present := fields["idCliente"]; present {
		checkCliente = obra.IDCliente
	}
	if _, present := fields["idEngenheiro"]; present {
		checkEngenheiro = obra.IDEngenheiro
	}
	if !h.checkRelations(w, r, checkCliente, checkEngenheiro) {
		return
	}

	if err := h.repo.UpdateObra(ctx, obra); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindForeignKey {
			writeError(w, http.StatusBadRequest, "Cliente ou engenheiro informado não encontrado.")
			return
		}
		writeServerError(w, "Erro interno ao processar a atualização.", err)
		return
	}

	updated, err := h.repo.GetObra(ctx, id)
	if err != nil || updated == nil {
		writeData(w, http.StatusOK, obra)
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (h *ObrasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ID inválido.")
		return
	}

	rows, err := h.repo.DeleteObra(r.Context(), id)
	if err != nil {
		writeServerError(w, "Erro interno ao processar a exclusão.", err)
		return
	}
	if rows == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Obra com ID %d não encontrada para exclusão.", id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
