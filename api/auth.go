package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/construsys/construtora/pkg/models"
	"github.com/construsys/construtora/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type loginResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Token    string      `json:"token"`
	UserData userSummary `json:"userData"`
}

type registerResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    userSummary `json:"data"`
}

// Login validates credentials and issues a signed JWT carrying the user's
// id, email and role.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email e senha são obrigatórios.")
		return
	}

	ctx := r.Context()

	user, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeServerError(w, "Erro interno do servidor durante a autenticação.", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeServerError(w, "Erro interno do servidor durante a autenticação.", err)
		return
	}

	writeJSON(w, loginResponse{
		Success:  true,
		Message:  "Login realizado com sucesso.",
		Token:    tokenStr,
		UserData: userSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}, http.StatusOK)
}

// Register creates a new user with a bcrypt-hashed password.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Nome, email e senha são obrigatórios para o registro.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeServerError(w, "Erro interno ao registrar usuário.", err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if _, err := h.userRepo.CreateUser(r.Context(), &user); err != nil {
		if ce, ok := repository.AsConstraint(err); ok && ce.Kind == repository.KindUnique {
			writeError(w, http.StatusBadRequest, "Este email já está em uso.")
			return
		}
		writeServerError(w, "Erro interno ao registrar usuário.", err)
		return
	}

	writeJSON(w, registerResponse{
		Success: true,
		Message: "Usuário registrado com sucesso.",
		Data:    userSummary{ID: user.ID, Name: user.Name, Email: user.Email},
	}, http.StatusCreated)
}
