// internal/users/routes.go
package users

import (
	"github.com/gorilla/mux"

	"github.com/bookwormapp/bookworm-backend/internal/auth"
)

// RegisterRoutes wires up the account endpoints
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/profile", handler.GetProfile).Methods("GET")
	api.HandleFunc("/profile", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile/password", handler.ChangePassword).Methods("PUT")
	api.HandleFunc("/profile/challenge", handler.GetChallenge).Methods("GET")
	api.HandleFunc("/profile/challenge", handler.SetChallenge).Methods("PUT")

	admin := router.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)

	admin.HandleFunc("/users", handler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}/role", handler.UpdateRole).Methods("PUT")
}
