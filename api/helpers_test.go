package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/construsys/construtora/api"
	migrations "github.com/construsys/construtora/db"
	"github.com/construsys/construtora/internal/config"
	"github.com/construsys/construtora/internal/db"
)

// newTestServer spins up the full router over a fresh in-memory database.
// Each test passes a distinct name so shared-cache memory DBs never collide
// across tests in the package.
func newTestServer(t *testing.T, name string) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	dsn := "file:" + name + "?mode=memory&cache=shared"

	database, err := db.New(ctx, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     "testsecret",
		APITimeout:    5 * time.Second,
		DatabasePath:  dsn,
		TokenDuration: time.Hour,
	}

	router, err := api.SetupRoutes(cfg, "test", "unknown", database)
	if err != nil {
		t.Fatalf("setup routes: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		http.DefaultClient.CloseIdleConnections()
		srv.Close()
		_ = database.Close()
	})

	return srv
}

// authToken registers a user and signs in, returning a bearer token for the
// protected routes.
func authToken(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	creds := map[string]string{
		"name":     "Tester",
		"email":    "tester@example.com",
		"password": "s3cret",
	}
	res, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", creds)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d", res.StatusCode)
	}

	res, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/login", "", creds)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", res.StatusCode, string(body))
	}

	var lr struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &lr); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	if lr.Token == "" {
		t.Fatalf("empty token")
	}
	return lr.Token
}

// doJSON performs a request with an optional JSON body and bearer token and
// returns the closed response plus its body bytes.
func doJSON(t *testing.T, method, url, token string, payload any) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

// errorMessage extracts the message field from an error envelope.
func errorMessage(t *testing.T, body []byte) string {
	t.Helper()

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal error envelope: %v (body=%s)", err, string(body))
	}
	if env.Success {
		t.Fatalf("expected error envelope, got success (body=%s)", string(body))
	}
	return env.Message
}
