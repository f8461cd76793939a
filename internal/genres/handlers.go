// internal/genres/handlers.go
package genres

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes genre endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new genre handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to list genres", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, list, http.StatusOK)
}

func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req CreateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	genre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrGenreAlreadyExists) {
			utils.ErrorResponse(w, err.Error(), http.StatusConflict)
		} else {
			utils.ErrorResponse(w, "Failed to create genre", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, genre, http.StatusCreated)
}

func (h *Handler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.ErrorResponse(w, "Invalid genre ID", http.StatusBadRequest)
		return
	}

	var req UpdateGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	genre, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGenreNotFound):
			utils.ErrorResponse(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrGenreAlreadyExists):
			utils.ErrorResponse(w, err.Error(), http.StatusConflict)
		default:
			utils.ErrorResponse(w, "Failed to update genre", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, genre, http.StatusOK)
}

func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.ErrorResponse(w, "Invalid genre ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			utils.ErrorResponse(w, err.Error(), http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to delete genre", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Genre deleted successfully", http.StatusOK)
}

func parseID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["id"], 10, 64)
}
