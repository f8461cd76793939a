// internal/reviews/routes.go
package reviews

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes wires up the review endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/reviews", handler.CreateReview).Methods("POST")
	api.HandleFunc("/books/{id:[0-9]+}/reviews", handler.ListBookReviews).Methods("GET")

	admin := router.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/reviews", handler.ListByStatus).Methods("GET")
	admin.HandleFunc("/reviews/{id:[0-9]+}", handler.UpdateStatus).Methods("PATCH")
	admin.HandleFunc("/reviews/{id:[0-9]+}", handler.DeleteReview).Methods("DELETE")
}
