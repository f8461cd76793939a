// internal/auth/handlers.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes authentication endpoints
type Handler struct {
	service Service
}

// NewHandler creates a new auth handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public auth endpoints
func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/auth").Subrouter()

	api.HandleFunc("/register", h.Register).Methods("POST")
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/refresh", h.Refresh).Methods("POST")
	api.HandleFunc("/logout", h.Logout).Methods("POST")
}

// RegisterProtectedRoutes mounts auth endpoints that need a valid token
func (h *Handler) RegisterProtectedRoutes(router *mux.Router, middleware *Middleware) {
	api := router.PathPrefix("/api/auth").Subrouter()
	api.Use(middleware.Authenticate)

	api.HandleFunc("/check", h.Check).Methods("GET")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			utils.ErrorResponse(w, err.Error(), http.StatusConflict)
		} else {
			utils.ErrorResponse(w, "Failed to register", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, resp, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.ErrorResponse(w, "Invalid email or password", http.StatusUnauthorized)
		} else {
			utils.ErrorResponse(w, "Failed to log in", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponse(w, "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// Body is optional; logout with only an access token still blacklists it
	_ = json.NewDecoder(r.Body).Decode(&req)

	accessToken := ""
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			accessToken = parts[1]
		}
	}

	if err := h.service.Logout(r.Context(), accessToken, req.RefreshToken); err != nil {
		utils.ErrorResponse(w, "Failed to log out", http.StatusInternalServerError)
		return
	}

	utils.MessageResponse(w, "Logged out successfully", http.StatusOK)
}

// Check returns the current session's user
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		return
	}

	utils.SuccessResponse(w, user, http.StatusOK)
}
