package api

import (
	"net/http"
	"time"

	"github.com/futig/interview-bot/internal/api/docs"
	interviewapi "github.com/futig/interview-bot/internal/api/interview"
	"github.com/futig/interview-bot/internal/api/middleware"
	"github.com/futig/interview-bot/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const bannerText = "Interview Bot API is running..."

// SetupRouter creates and configures the HTTP router. requestTimeout bounds
// every request and must leave room for one upstream generation call.
func SetupRouter(interviewHandler *interviewapi.Handler, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.Text(w, http.StatusOK, bannerText)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	interviewapi.RegisterRoutes(r, interviewHandler)

	return r
}
