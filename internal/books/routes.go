// internal/books/routes.go
package books

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes wires up the book endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/books", handler.ListBooks).Methods("GET")
	api.HandleFunc("/books/{id:[0-9]+}", handler.GetBook).Methods("GET")

	admin := router.PathPrefix("/api/v1").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/books", handler.CreateBook).Methods("POST")
	admin.HandleFunc("/books/{id:[0-9]+}", handler.UpdateBook).Methods("PUT")
	admin.HandleFunc("/books/{id:[0-9]+}", handler.DeleteBook).Methods("DELETE")
	admin.HandleFunc("/books/{id:[0-9]+}/cover", handler.UploadCover).Methods("POST")
}
