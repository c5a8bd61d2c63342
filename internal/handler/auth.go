package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"minitweet/internal/httputil"
	"minitweet/internal/model"
)

// AccountService is the part of the user service the auth endpoints need.
type AccountService interface {
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.User, error)
	Authenticate(ctx context.Context, req *model.LoginRequest) (*model.LoginResult, error)
}

// AuthHandler groups the public account endpoints.
type AuthHandler struct {
	accounts AccountService
}

func NewAuthHandler(accounts AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// SignUp handles account creation
// PUT /sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.accounts.SignUp(r.Context(), &req)
	if err != nil {
		httputil.WriteServiceError(w, "sign-up", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Login handles user login
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.accounts.Authenticate(r.Context(), &req)
	if err != nil {
		httputil.WriteServiceError(w, "login", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LoginResponse{
		Message:     "Login Success!",
		AccessToken: result.AccessToken,
	})
}
