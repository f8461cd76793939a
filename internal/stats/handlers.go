// internal/stats/handlers.go
package stats

import (
	"net/http"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// Handler exposes stats endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new stats handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.service.UserStats(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, stats, http.StatusOK)
}

func (h *Handler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AdminStats(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, stats, http.StatusOK)
}
