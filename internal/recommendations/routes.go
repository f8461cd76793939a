// internal/recommendations/routes.go
package recommendations

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes wires up the recommendation endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")
	api.HandleFunc("/recommendations/quick", handler.GetQuickRecommendations).Methods("GET")
}
