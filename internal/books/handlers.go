// internal/books/handlers.go
package books

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes catalog endpoints
type Handler struct {
	service     *Service
	defaultPage int
	maxPage     int
}

// NewHandler creates a new book handler
func NewHandler(service *Service, defaultPageSize, maxPageSize int) *Handler {
	return &Handler{
		service:     service,
		defaultPage: defaultPageSize,
		maxPage:     maxPageSize,
	}
}

func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var genreID int64
	if g := r.URL.Query().Get("genre"); g != "" {
		if val, err := strconv.ParseInt(g, 10, 64); err == nil {
			genreID = val
		}
	}

	page, limit := h.getPagination(r)

	resp, err := h.service.List(r.Context(), query, genreID, page, limit)
	if err != nil {
		utils.ErrorResponse(w, "Failed to list books", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}

func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		utils.ErrorResponse(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			utils.ErrorResponse(w, "Book not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to get book", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, book, http.StatusOK)
}

func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.service.Create(r.Context(), &req)
	if err != nil {
		utils.ErrorResponse(w, "Failed to create book", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, book, http.StatusCreated)
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		utils.ErrorResponse(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			utils.ErrorResponse(w, "Book not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to update book", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, book, http.StatusOK)
}

func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		utils.ErrorResponse(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBookNotFound) {
			utils.ErrorResponse(w, "Book not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, "Failed to delete book", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Book deleted successfully", http.StatusOK)
}

func (h *Handler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		utils.ErrorResponse(w, "Invalid book ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.ErrorResponse(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		utils.ErrorResponse(w, "Missing cover file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.service.UploadCover(r.Context(), id, file, header)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			utils.ErrorResponse(w, "Book not found", http.StatusNotFound)
		} else {
			utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	utils.SuccessResponse(w, map[string]string{"cover_image": url}, http.StatusOK)
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

func (h *Handler) parseID(r *http.Request) (int64, error) {
	vars := mux.Vars(r)
	return strconv.ParseInt(vars["id"], 10, 64)
}
