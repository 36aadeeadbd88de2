package api

import (
	"net/http"
	"time"

	"footbuddy/internal/config"
	"footbuddy/internal/scheduler"
	"footbuddy/pkg/logger"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, sched *scheduler.Scheduler) *mux.Router {
	router := mux.NewRouter()

	handler := NewHandler(cfg, sched)

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health & Status
	api.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	api.HandleFunc("/status", handler.GetStatus).Methods("GET")

	// Manual digest trigger
	api.HandleFunc("/digest/run", handler.RunDigest).Methods("POST")

	// Data retrieval
	api.HandleFunc("/fixtures", handler.GetFixtures).Methods("GET")
	api.HandleFunc("/fixtures/{id}", handler.GetFixtureByID).Methods("GET")

	// Jobs history
	api.HandleFunc("/jobs", handler.GetJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", handler.GetJobByID).Methods("GET")

	// Middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	return router
}

// loggingMiddleware logs each incoming request
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// corsMiddleware sets permissive CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
