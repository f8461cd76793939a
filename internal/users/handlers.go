// internal/users/handlers.go
package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes account endpoints
type Handler struct {
	service     *Service
	defaultPage int
	maxPage     int
}

// NewHandler creates a new user handler
func NewHandler(service *Service, defaultPageSize, maxPageSize int) *Handler {
	return &Handler{
		service:     service,
		defaultPage: defaultPageSize,
		maxPage:     maxPageSize,
	}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to get profile", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNothingToUpdate):
			utils.ErrorResponse(w, "Nothing to update", http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		default:
			utils.ErrorResponse(w, "Failed to update profile", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			utils.ErrorResponse(w, "Current password is incorrect", http.StatusUnauthorized)
		case errors.Is(err, ErrUserNotFound):
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		default:
			utils.ErrorResponse(w, "Failed to change password", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Password updated successfully", http.StatusOK)
}

func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	challenge, err := h.service.GetChallenge(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get challenge", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, challenge, http.StatusOK)
}

func (h *Handler) SetChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SetChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	challenge, err := h.service.SetChallenge(r.Context(), userID, &req)
	if err != nil {
		utils.ErrorResponse(w, "Failed to set challenge", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, challenge, http.StatusOK)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := h.getPagination(r)

	resp, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		utils.ErrorResponse(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to update role", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

func (h *Handler) getPagination(r *http.Request) (int, int) {
	page := 1
	limit := h.defaultPage

	if p := r.URL.Query().Get("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil && val > 0 {
			page = val
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= h.maxPage {
			limit = val
		}
	}

	return page, limit
}
