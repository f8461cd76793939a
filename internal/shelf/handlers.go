// internal/shelf/handlers.go
package shelf

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes shelf endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new shelf handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.Upsert(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			utils.ErrorResponse(w, "Book not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to update shelf", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, entry, http.StatusOK)
}

func (h *Handler) ListShelf(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && status != StatusWantToRead && status != StatusCurrentlyReading && status != StatusRead {
		utils.ErrorResponse(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	entries, err := h.service.List(r.Context(), userID, status)
	if err != nil {
		utils.ErrorResponse(w, "Failed to list shelf", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, entries, http.StatusOK)
}

func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	bookID, err := strconv.ParseInt(vars["bookId"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), userID, bookID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			utils.ErrorResponse(w, "Shelf entry not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to remove shelf entry", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Book removed from shelf", http.StatusOK)
}
