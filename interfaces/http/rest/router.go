package rest

import (
	"context"
	"net/http"
	"time"

	"symptomcheck/application/ports"
	"symptomcheck/infrastructure/config"
	"symptomcheck/interfaces/http/rest/handlers"
	"symptomcheck/interfaces/http/rest/middleware"
	"symptomcheck/pkg/auth"
	"symptomcheck/pkg/common"
	pkgerrors "symptomcheck/pkg/errors"
	"symptomcheck/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// readyTimeout bounds the store ping behind /ready
const readyTimeout = 2 * time.Second

// Router creates and configures the HTTP router
type Router struct {
	cfg        *config.Config
	symptoms   *handlers.SymptomCheckHandler
	reference  *handlers.ReferenceHandler
	verifier   auth.TokenVerifier
	limiter    auth.RateLimiter
	recorder   observability.Recorder
	health     ports.HealthChecker
	errHandler *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	symptoms *handlers.SymptomCheckHandler,
	reference *handlers.ReferenceHandler,
	verifier auth.TokenVerifier,
	limiter auth.RateLimiter,
	recorder observability.Recorder,
	health ports.HealthChecker,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *Router {
	if recorder == nil {
		recorder = observability.NopRecorder{}
	}
	return &Router{
		cfg:        cfg,
		symptoms:   symptoms,
		reference:  reference,
		verifier:   verifier,
		limiter:    limiter,
		recorder:   recorder,
		health:     health,
		errHandler: errHandler,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.recorder))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errHandler.Handle(w, r, pkgerrors.NewNotFoundError("route"))
	})

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if exposer, ok := rt.recorder.(interface{ Handler() http.Handler }); ok && rt.cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", exposer.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authenticate())
		if rt.limiter != nil {
			r.Use(middleware.RateLimit(rt.limiter, rt.cfg.RateLimitPerMinute, rt.errHandler, rt.logger))
		}

		r.Route("/symptom-checks", func(r chi.Router) {
			r.Post("/", rt.symptoms.Analyze)
			r.Get("/", rt.symptoms.ListHistory)
			r.Delete("/{id}", rt.symptoms.DeleteHistoryEntry)
		})

		r.Get("/conditions/{name}", rt.reference.DescribeCondition)
		r.Get("/symptoms", rt.reference.ListSymptoms)
	})

	return router
}

// authenticate picks header trust behind API Gateway and token
// verification everywhere else
func (rt *Router) authenticate() func(http.Handler) http.Handler {
	if rt.cfg.IsLambda {
		return middleware.AuthenticateForLambda(rt.errHandler)
	}
	return middleware.Authenticate(rt.verifier, rt.errHandler, rt.logger)
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck pings the history store
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.health != nil {
		ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
		defer cancel()

		if err := rt.health.Ping(ctx); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"reason": "history store unreachable",
			})
			return
		}
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
