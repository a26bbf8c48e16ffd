package routes

import (
	"net/http"

	"github.com/zatekoja/botornot/internal/api/handlers"
	"github.com/zatekoja/botornot/internal/api/middleware"
	"github.com/zatekoja/botornot/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	predictionHandler *handlers.PredictionHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	predictionHandler *handlers.PredictionHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		predictionHandler: predictionHandler,
		allowedOrigins:    allowedOrigins,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Prediction endpoints
	r.mux.HandleFunc("POST /predict", r.predictionHandler.Predict)
	r.mux.HandleFunc("POST /predict/{$}", r.predictionHandler.Predict)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics, r.mux)(handler)
	handler = middleware.RecoveryMiddleware(handler)

	// CORS wraps everything so headers are set even on recovered panics
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
