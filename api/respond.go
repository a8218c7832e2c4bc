package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Every response uses the same envelope: {success:true,data,...} on success,
// {success:false,message,error?} on failure.

type successEnvelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Meta    *listMeta `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type listMeta struct {
	Total        int64 `json:"total"`
	PaginaAtual  int   `json:"paginaAtual"`
	Limite       int   `json:"limite"`
	TotalPaginas int64 `json:"totalPaginas"`
}

func newListMeta(total int64, pagina, limite int) *listMeta {
	totalPaginas := (total + int64(limite) - 1) / int64(limite)
	return &listMeta{Total: total, PaginaAtual: pagina, Limite: limite, TotalPaginas: totalPaginas}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, successEnvelope{Success: true, Data: data}, status)
}

func writeList(w http.ResponseWriter, data any, meta *listMeta) {
	writeJSON(w, successEnvelope{Success: true, Data: data, Meta: meta}, http.StatusOK)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, errorEnvelope{Success: false, Message: message}, status)
}

func writeServerError(w http.ResponseWriter, message string, err error) {
	env := errorEnvelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	writeJSON(w, env, http.StatusInternalServerError)
}

// NotFoundHandler answers unmatched routes with the standard envelope.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Sprintf("Rota não encontrada: %s %s", r.Method, r.URL.Path))
}

// pathID parses the {id} route variable; a non-numeric id is a client error.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// pageParams reads ?pagina and ?limite: pagina defaults to 1, limite defaults
// to 10 and is capped at 100.
func pageParams(r *http.Request) (pagina, limite int) {
	pagina = 1
	limite = 10

	q := r.URL.Query()
	if p := q.Get("pagina"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			pagina = v
		}
	}
	if l := q.Get("limite"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limite = v
		}
	}
	if limite > 100 {
		limite = 100
	}

	return pagina, limite
}
