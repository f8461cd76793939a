// internal/genres/routes.go
package genres

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes mounts genre endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/genres", handler.ListGenres).Methods("GET")

	// Admin-only writes
	admin := router.PathPrefix("/api/v1").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/genres", handler.CreateGenre).Methods("POST")
	admin.HandleFunc("/genres/{id}", handler.UpdateGenre).Methods("PUT")
	admin.HandleFunc("/genres/{id}", handler.DeleteGenre).Methods("DELETE")
}
