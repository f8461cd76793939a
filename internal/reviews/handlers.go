// internal/reviews/handlers.go
package reviews

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes review endpoints
type Handler struct {
	service     *Service
	defaultPage int
	maxPage     int
}

// NewHandler creates a new review handler
func NewHandler(service *Service, defaultPageSize, maxPageSize int) *Handler {
	return &Handler{
		service:     service,
		defaultPage: defaultPageSize,
		maxPage:     maxPageSize,
	}
}

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyReviewed):
			utils.ErrorResponse(w, "You have already reviewed this book", http.StatusConflict)
		case errors.Is(err, ErrBookNotFound):
			utils.ErrorResponse(w, "Book not found", http.StatusNotFound)
		default:
			utils.ErrorResponse(w, "Failed to create review", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, review, http.StatusCreated)
}

func (h *Handler) ListBookReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	page, limit := h.getPagination(r)

	resp, err := h.service.ListForBook(r.Context(), bookID, page, limit)
	if err != nil {
		utils.ErrorResponse(w, "Failed to list reviews", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusApproved && status != StatusRejected {
		utils.ErrorResponse(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	page, limit := h.getPagination(r)

	resp, err := h.service.ListByStatus(r.Context(), status, page, limit)
	if err != nil {
		utils.ErrorResponse(w, "Failed to list reviews", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			utils.ErrorResponse(w, "Review not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to update review", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, review, http.StatusOK)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			utils.ErrorResponse(w, "Review not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to delete review", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Review deleted successfully", http.StatusOK)
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
