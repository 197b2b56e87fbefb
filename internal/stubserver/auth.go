package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftdesk/shiftdesk/internal/pkg/validator"
)

type AuthHandler struct {
	store  *Storage
	tokens *TokenService
}

func NewAuthHandler(store *Storage, tokens *TokenService) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenOut struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := h.store.UserByEmail(r.Context(), in.Email)
	if errors.Is(err, ErrNotFound) {
		unauthorized(w, "Invalid credentials")
		return
	}
	if err != nil {
		internalError(w)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, tokenOut{AccessToken: token, TokenType: "bearer"})
}

type registerIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userOut struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in registerIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if !validator.IsValidEmail(in.Email) {
		badRequest(w, "invalid email")
		return
	}
	if len(in.Password) < 6 {
		badRequest(w, "password must be at least 6 characters")
		return
	}
	if in.Role == "" {
		in.Role = "employee"
	}
	if in.Role != "employee" && in.Role != "manager" {
		badRequest(w, "role must be employee or manager")
		return
	}

	if _, err := h.store.UserByEmail(r.Context(), in.Email); err == nil {
		badRequest(w, "Email already registered")
		return
	} else if !errors.Is(err, ErrNotFound) {
		internalError(w)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(w)
		return
	}
	id, err := h.store.CreateUser(r.Context(), in.Email, string(hash), in.Role)
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, userOut{ID: id, Email: in.Email, Role: in.Role})
}
