package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func clientePayload(n int) map[string]any {
	return map[string]any{
		"nome":     fmt.Sprintf("Cliente %d", n),
		"endereco": "Rua das Obras, 100",
		"telefone": "11999990000",
		"cpfCnpj":  fmt.Sprintf("123456789%02d", n),
		"rgIe":     fmt.Sprintf("556677%02d", n),
	}
}

func TestClientesCRUD(t *testing.T) {
	srv := newTestServer(t, "clientes_test")
	token := authToken(t, srv)
	base := srv.URL + "/api/v1/clientes"

	// create
	res, body := doJSON(t, http.MethodPost, base, token, clientePayload(1))
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", res.StatusCode, string(body))
	}
	var created struct {
		Success bool `json:"success"`
		Data    struct {
			IDCliente    int64  `json:"idCliente"`
			Nome         string `json:"nome"`
			CpfCnpj      string `json:"cpfCnpj"`
			CriadoEm     int64  `json:"criadoEm"`
			AtualizadoEm int64  `json:"atualizadoEm"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal create: %v", err)
	}
	if !created.Success || created.Data.IDCliente == 0 {
		t.Fatalf("unexpected create response: %s", string(body))
	}
	if created.Data.CriadoEm == 0 || created.Data.AtualizadoEm == 0 {
		t.Fatalf("timestamps not set: %s", string(body))
	}
	id := created.Data.IDCliente

	// missing required field
	bad := clientePayload(2)
	delete(bad, "nome")
	res, body = doJSON(t, http.MethodPost, base, token, bad)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing field: expected 400 got %d", res.StatusCode)
	}
	if msg := errorMessage(t, body); msg != "Dados incompletos. Todos os campos são obrigatórios." {
		t.Fatalf("missing field: unexpected message %q", msg)
	}

	// duplicate cpfCnpj
	dup := clientePayload(3)
	dup["cpfCnpj"] = created.Data.CpfCnpj
	res, body = doJSON(t, http.MethodPost, base, token, dup)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400 got %d", res.StatusCode)
	}
	if msg := errorMessage(t, body); msg != "CPF/CNPJ já cadastrado." {
		t.Fatalf("duplicate: unexpected message %q", msg)
	}

	// get by id
	res, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/%d", base, id), token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", res.StatusCode)
	}
	var fetched struct {
		Data struct {
			IDCliente int64  `json:"idCliente"`
			Nome      string `json:"nome"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &fetched); err != nil {
		t.Fatalf("unmarshal get: %v", err)
	}
	if fetched.Data.IDCliente != id || fetched.Data.Nome != "Cliente 1" {
		t.Fatalf("unexpected get response: %s", string(body))
	}

	// non-numeric id
	res, body = doJSON(t, http.MethodGet, base+"/abc", token, nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400 got %d", res.StatusCode)
	}
	if msg := errorMessage(t, body); msg != "ID inválido." {
		t.Fatalf("bad id: unexpected message %q", msg)
	}

	// unknown id
	res, body = doJSON(t, http.MethodGet, base+"/9999", token, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404 got %d", res.StatusCode)
	}
	if msg := errorMessage(t, body); msg != "Cliente não encontrado." {
		t.Fatalf("unknown id: unexpected message %q", msg)
	}

	// partial update touches only the fields present
	res, body = doJSON(t, http.MethodPut, fmt.Sprintf("%s/%d", base, id), token, map[string]any{"telefone": "11888887777"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200 got %d body=%s", res.StatusCode, string(body))
	}
	var updated struct {
		Data struct {
			Nome     string `json:"nome"`
			Telefone string `json:"telefone"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("unmarshal update: %v", err)
	}
	if updated.Data.Telefone != "11888887777" || updated.Data.Nome != "Cliente 1" {
		t.Fatalf("partial update clobbered fields: %s", string(body))
	}

	// update of a missing row
	res, body = doJSON(t, http.MethodPut, base+"/9999", token, map[string]any{"telefone": "1"})
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("update missing: expected 404 got %d", res.StatusCode)
	}
	if msg := errorMessage(t, body); msg != "Cliente com ID 9999 não encontrado para atualização." {
		t.Fatalf("update missing: unexpected message %q", msg)
	}

	// delete, then the row is gone
	res, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, id), token, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204 got %d", res.StatusCode)
	}
	res, body = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", base, id), token, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("delete again: expected 404 got %d", res.StatusCode)
	}
	if msg := errorMessage(t, body); msg != fmt.Sprintf("Cliente com ID %d não encontrado para exclusão.", id) {
		t.Fatalf("delete again: unexpected message %q", msg)
	}
}

func TestClientesPagination(t *testing.T) {
	srv := newTestServer(t, "clientes_pagination_test")
	token := authToken(t, srv)
	base := srv.URL + "/api/v1/clientes"

	for i := 1; i <= 12; i++ {
		res, body := doJSON(t, http.MethodPost, base, token, clientePayload(i))
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("seed %d: expected 201 got %d body=%s", i, res.StatusCode, string(body))
		}
	}

	type listResponse struct {
		Success bool `json:"success"`
		Data    []struct {
			IDCliente int64 `json:"idCliente"`
		} `json:"data"`
		Meta struct {
			Total        int64 `json:"total"`
			PaginaAtual  int   `json:"paginaAtual"`
			Limite       int   `json:"limite"`
			TotalPaginas int64 `json:"totalPaginas"`
		} `json:"meta"`
	}

	// defaults: pagina=1, limite=10
	res, body := doJSON(t, http.MethodGet, base, token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", res.StatusCode)
	}
	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(lr.Data) != 10 || lr.Meta.Total != 12 || lr.Meta.PaginaAtual != 1 || lr.Meta.Limite != 10 || lr.Meta.TotalPaginas != 2 {
		t.Fatalf("unexpected default page: %s", string(body))
	}

	// second page holds the remainder
	res, body = doJSON(t, http.MethodGet, base+"?pagina=2", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("page 2: expected 200 got %d", res.StatusCode)
	}
	lr = listResponse{}
	if err := json.Unmarshal(body, &lr); err != nil {
		t.Fatalf("unmarshal page 2: %v", err)
	}
	if len(lr.Data) != 2 || lr.Meta.PaginaAtual != 2 {
		t.Fatalf("unexpected page 2: %s", string(body))
	}

	// limite is capped at 100
	res, body = doJSON(t, http.MethodGet, base+"?limite=1000", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("capped limit: expected 200 got %d", res.StatusCode)
	}
	lr = listResponse{}
	if err := json.Unmarshal(body, &lr); err != nil {
		t.Fatalf("unmarshal capped limit: %v", err)
	}
	if lr.Meta.Limite != 100 || len(lr.Data) != 12 || lr.Meta.TotalPaginas != 1 {
		t.Fatalf("unexpected capped limit response: %s", string(body))
	}

	// a page past the data is an empty list, not an error
	res, body = doJSON(t, http.MethodGet, base+"?pagina=5", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("empty page: expected 200 got %d", res.StatusCode)
	}
	lr = listResponse{}
	if err := json.Unmarshal(body, &lr); err != nil {
		t.Fatalf("unmarshal empty page: %v", err)
	}
	if len(lr.Data) != 0 || lr.Meta.Total != 12 {
		t.Fatalf("unexpected empty page response: %s", string(body))
	}
}
