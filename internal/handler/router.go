package handler

import (
	"net/http"

	"doc-editor-shell/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestLoggingMiddleware(container.Logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"doc-editor-shell"}`))
	}).Methods("GET")

	// Initialize handlers
	documentHandler := NewDocumentHandler(
		container.HandoffService,
		container.Transfer,
		container.Gateway,
		container.PDFViewer,
		container.DocxConverter,
		container.Logger,
	)
	preferenceHandler := NewPreferenceHandler(container.PreferenceService, container.Logger)

	// Document hand-off and viewer routes
	api.HandleFunc("/documents", documentHandler.Upload).Methods("POST")
	api.HandleFunc("/documents/active", documentHandler.GetActive).Methods("GET")
	api.HandleFunc("/documents/active", documentHandler.ClearActive).Methods("DELETE")
	api.HandleFunc("/documents/active/status", documentHandler.GetActiveStatus).Methods("GET")
	api.HandleFunc("/documents/active/pages/{page}", documentHandler.RenderPage).Methods("GET")
	api.HandleFunc("/documents/active/html", documentHandler.GetActiveHTML).Methods("GET")

	// Preference routes
	api.HandleFunc("/preferences", preferenceHandler.GetPreferences).Methods("GET")
	api.HandleFunc("/preferences", preferenceHandler.UpdatePreferences).Methods("PUT")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-CSRF-Token",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
