package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/construsys/construtora/api"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

func protectedRouter(secret string) *mux.Router {
	r := mux.NewRouter()
	r.Use(api.JWTAuthMiddlewareWithSecret(secret))
	r.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		ident, ok := api.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "no identity", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, ident.Email)
	}).Methods("GET")
	return r
}

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": float64(7),
		"email":  "jwt@example.com",
		"role":   "viewer",
		"exp":    exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestJWTAuthMiddleware(t *testing.T) {
	secret := "testsecret"

	tests := []struct {
		name       string
		secret     string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "MissingSecret",
			secret:     "",
			authHeader: "Bearer " + signToken(t, secret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Erro de configuração do servidor.",
		},
		{
			name:       "MissingHeader",
			secret:     secret,
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Acesso negado. Token não fornecido ou formato incorreto (Bearer <token>).",
		},
		{
			name:       "NotBearer",
			secret:     secret,
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Acesso negado. Token não fornecido ou formato incorreto (Bearer <token>).",
		},
		{
			name:       "GarbageToken",
			secret:     secret,
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token inválido ou expirado.",
		},
		{
			name:       "WrongSecret",
			secret:     secret,
			authHeader: "Bearer " + signToken(t, "othersecret", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token inválido ou expirado.",
		},
		{
			name:       "ExpiredToken",
			secret:     secret,
			authHeader: "Bearer " + signToken(t, secret, time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Token inválido ou expirado.",
		},
		{
			name:       "ValidToken",
			secret:     secret,
			authHeader: "Bearer " + signToken(t, secret, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
			wantBody:   "jwt@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(tt.secret)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()
			body, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(body))
			}
			if !strings.Contains(string(body), tt.wantBody) {
				t.Fatalf("expected body to contain %q, got %s", tt.wantBody, string(body))
			}
		})
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	h := api.CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/clientes", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", res.StatusCode)
	}
	if res.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS origin header")
	}
	if !strings.Contains(res.Header.Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Fatalf("missing CORS allow-headers")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := api.RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", res.StatusCode)
	}
	if !strings.Contains(string(body), "Erro interno do servidor.") {
		t.Fatalf("unexpected body: %s", string(body))
	}
}
