package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"etherlink/application/commands/bus"
	querybus "etherlink/application/queries/bus"
	"etherlink/infrastructure/config"
	"etherlink/interfaces/http/rest/handlers"
	"etherlink/interfaces/http/rest/middleware"
	v1 "etherlink/interfaces/http/rest/v1"
	pkgerrors "etherlink/pkg/errors"
	"etherlink/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	events     handlers.EventSource
	metrics    *observability.Collector
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRouter creates a new router instance. A nil metrics collector
// disables /metrics.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	events handlers.EventSource,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		events:     events,
		metrics:    metrics,
		cfg:        cfg,
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
	router.Use(middleware.Logger(rt.logger, rt.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/health", rt.healthCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(rt.metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())
	router.Mount("/api/v1", v1.NewRouter(v1.Handlers{
		Runes:   handlers.NewRuneHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger),
		Tasks:   handlers.NewTaskHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger),
		Synth:   handlers.NewSynthHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger),
		Desktop: handlers.NewDesktopHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger),
		Events:  handlers.NewEventsHandler(rt.events, rt.logger),
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
