package handler

import (
	"net/http"

	"audio-weaver/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"audio-weaver"}`))
	}).Methods("GET")

	// Initialize handlers
	audioHandler := NewAudioHandler(
		container.Pipeline,
		container.Extractor,
		container.Store,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)

	// Document routes
	api.HandleFunc("/documents/extract", audioHandler.ExtractDocument).Methods("POST")

	// Audio routes
	api.HandleFunc("/audio/generations", audioHandler.GenerateAudio).Methods("POST")

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
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
