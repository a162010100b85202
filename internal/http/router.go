package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/pravaah/internal/config"
	"github.com/geocoder89/pravaah/internal/http/handlers"
	"github.com/geocoder89/pravaah/internal/http/middlewares"
	"github.com/geocoder89/pravaah/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Service is what the router needs from the collection layer.
type Service interface {
	handlers.DocumentService
	Ping(ctx context.Context) error
}

type Deps struct {
	Service Service
	Prom    *observability.Prom
	// Gatherer backs GET /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	// Draining flips /readyz to 503 once shutdown has begun.
	Draining func() bool
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORS(cfg.AllowedOrigins))

	// health
	var ping func(context.Context) error
	if deps.Service != nil {
		ping = deps.Service.Ping
	}
	h := handlers.NewHealthHandler(ping, deps.Draining)
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	limiter := middlewares.NewRateLimiter(cfg.WriteRateLimit, cfg.WriteBurst)
	collectionsHandler := handlers.NewCollectionsHandler(deps.Service)

	api := r.Group("/api")
	api.GET("/schema", handlers.Schema)
	api.GET("/:collection", collectionsHandler.List)
	api.GET("/:collection/:id", collectionsHandler.Get)
	api.POST("/:collection",
		limiter.RateLimiterMiddleware(middlewares.KeyByIP),
		middlewares.RequireJSON(),
		middlewares.MaxBodyBytes(cfg.MaxBodyBytes),
		collectionsHandler.Create,
	)

	return r
}
