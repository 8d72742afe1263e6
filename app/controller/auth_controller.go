package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"stride-store/app/middleware"
	"stride-store/models"
	"stride-store/repository"
	"stride-store/service"
)

// AuthController handles HTTP requests for accounts and sessions
type AuthController struct {
	auth  service.AuthServiceInterface
	users repository.UserRepositoryInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(auth service.AuthServiceInterface, users repository.UserRepositoryInterface) *AuthController {
	return &AuthController{auth: auth, users: users}
}

// Register handles POST /auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		http.Error(w, "a valid email is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "password must have at least 6 characters", http.StatusBadRequest)
		return
	}

	resp, err := c.auth.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			http.Error(w, "email is already registered", http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to register: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := c.auth.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to login: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFrom(r)

	user, err := c.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
