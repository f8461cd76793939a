// internal/stats/routes.go
package stats

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes wires up the stats endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/stats/user", handler.GetUserStats).Methods("GET")

	admin := router.PathPrefix("/api/v1").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/stats/admin", handler.GetAdminStats).Methods("GET")
}
