// internal/matching/routes.go

package matching

import (
	"github.com/gorilla/mux"

	"github.com/imadgeboyega/kiekky-matching/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Interactions
	api.HandleFunc("/interactions", handler.RecordInteraction).Methods("POST")

	// Derived views
	api.HandleFunc("/preferences/{userId}", handler.GetPreferences).Methods("GET")
	api.HandleFunc("/compatibility/{userId}/{targetId}", handler.GetCompatibility).Methods("GET")

	// Profile cache
	api.HandleFunc("/profiles/{userId}/invalidate", handler.InvalidateProfile).Methods("POST")
}
