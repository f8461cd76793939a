// internal/shelf/routes.go
package shelf

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes wires up the shelf endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/shelf", handler.UpsertEntry).Methods("POST")
	api.HandleFunc("/shelf", handler.ListShelf).Methods("GET")
	api.HandleFunc("/shelf/{bookId:[0-9]+}", handler.RemoveEntry).Methods("DELETE")
}
