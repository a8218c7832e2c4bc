package api

import (
	"net/http"

	"github.com/construsys/construtora/internal/config"
	"github.com/construsys/construtora/internal/db"
	"github.com/construsys/construtora/internal/repository/sqlite"
	"github.com/construsys/construtora/internal/validate"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// crudHandler is the uniform contract every entity handler set implements.
type crudHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(MetricsMiddleware)

	r.NotFoundHandler = http.HandlerFunc(NotFoundHandler)

	// Repository and payload validator
	repo := sqlite.New(database)
	validator, err := validate.New()
	if err != nil {
		return nil, err
	}

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)

	apiV1 := r.PathPrefix("/api/v1").Subrouter()

	// Open endpoints
	apiV1.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	apiV1.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	apiV1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	apiV1.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected entity routes, one authenticated subrouter per entity
	jwtAuth := JWTAuthMiddlewareWithSecret(cfg.JWTSecret)
	registerCRUD(apiV1, "/clientes", jwtAuth, NewClientesHandler(repo, validator))
	registerCRUD(apiV1, "/engenheiros", jwtAuth, NewEngenheirosHandler(repo, validator))
	registerCRUD(apiV1, "/empreiteiras", jwtAuth, NewEmpreiteirasHandler(repo, validator))
	registerCRUD(apiV1, "/trabalhadores", jwtAuth, NewTrabalhadoresHandler(repo, validator))
	registerCRUD(apiV1, "/obras", jwtAuth, NewObrasHandler(repo, repo, repo, validator))

	return r, nil
}

func registerCRUD(parent *mux.Router, prefix string, auth mux.MiddlewareFunc, h crudHandler) {
	sr := parent.PathPrefix(prefix).Subrouter()
	sr.Use(auth)
	sr.HandleFunc("", h.Create).Methods("POST")
	sr.HandleFunc("", h.List).Methods("GET")
	sr.HandleFunc("/{id}", h.Get).Methods("GET")
	sr.HandleFunc("/{id}", h.Update).Methods("PUT")
	sr.HandleFunc("/{id}", h.Delete).Methods("DELETE")
}
