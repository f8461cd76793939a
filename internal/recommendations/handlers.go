// internal/recommendations/handlers.go
package recommendations

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
	"github.com/bookwormapp/bookworm-backend/internal/common/utils"
)

// maxLimit caps how many recommendations one request may ask for
const maxLimit = 50

// Handler exposes the recommendation endpoints
type Handler struct {
	engine *Engine
}

// NewHandler creates a new recommendation handler
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := Options{}

	if l := r.URL.Query().Get("limit"); l != "" {
		val, err := strconv.Atoi(l)
		if err != nil {
			utils.ErrorResponse(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		if val < 1 {
			val = 1
		}
		if val > maxLimit {
			val = maxLimit
		}
		opts.Limit = val
	}

	if m := r.URL.Query().Get("min_rating"); m != "" {
		val, err := strconv.ParseFloat(m, 64)
		if err != nil || val < 0 || val > 5 {
			utils.ErrorResponse(w, "Invalid min_rating", http.StatusBadRequest)
			return
		}
		opts.MinRating = val
	}

	if ex := r.URL.Query().Get("exclude"); ex != "" {
		for _, part := range strings.Split(ex, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				utils.ErrorResponse(w, "Invalid exclude list", http.StatusBadRequest)
				return
			}
			opts.ExcludeBookIDs = append(opts.ExcludeBookIDs, id)
		}
	}

	results, err := h.engine.Generate(r.Context(), userID, opts)
	if err != nil {
		utils.ErrorResponse(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []RecommendationResult{}
	}

	utils.SuccessResponse(w, results, http.StatusOK)
}

func (h *Handler) GetQuickRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := QuickLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= maxLimit {
			limit = val
		}
	}

	list, err := h.engine.Quick(r.Context(), userID, limit)
	if err != nil {
		utils.ErrorResponse(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, list, http.StatusOK)
}
