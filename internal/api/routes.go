package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"unyson/internal/app"
)

// RegisterRoutes sets up the API endpoints and handlers.
func RegisterRoutes(router *mux.Router, a *app.Context) {
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	// --- Plugin Routes ---
	apiV1.HandleFunc("/unyson", handleGetPlugin(a)).Methods(http.MethodGet)
	apiV1.HandleFunc("/unyson/versions", handleListVersions(a)).Methods(http.MethodGet)

	// --- Extension Routes ---
	apiV1.HandleFunc("/extensions", handleListExtensions(a)).Methods(http.MethodGet)
	apiV1.HandleFunc("/extensions/{name}", handleGetExtension(a)).Methods(http.MethodGet)
}
