package web

import (
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"gocompare_api/internal/auth"
	"gocompare_api/internal/compare/app/web/handlers"
	"gocompare_api/metrics"
	"gocompare_api/pkg/logger"
	"gocompare_api/pkg/middleware"
)

type Routes struct {
	Webhook *handlers.WebhookHandler
	Compare *handlers.CompareHandler
	Health  *handlers.HealthHandler

	// JWTSecret enables bearer auth on the webhook when set.
	JWTSecret      string
	WebhookLimiter *rate.Limiter
	AllowedOrigins []string
}

// SetupRoutes builds the service mux. Read endpoints are open to the web
// front-end through CORS; the webhook is rate limited and optionally
// authenticated.
func SetupRoutes(routes Routes, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	webhook := []middleware.Middleware{middleware.RateLimitMiddleware(routes.WebhookLimiter)}
	if routes.JWTSecret != "" {
		webhook = append(webhook,
			auth.AuthMiddleware(routes.JWTSecret),
			auth.RoleMiddleware(auth.RoleIngest, auth.RoleAdmin),
		)
	}
	mux.Handle("POST /api/webhooks/apify", middleware.Chain(http.HandlerFunc(routes.Webhook.Apify), webhook...))

	mux.HandleFunc("GET /api/compare", routes.Compare.Compare)
	mux.HandleFunc("GET /api/products/{id}", routes.Compare.Product)
	mux.HandleFunc("GET /api/categories", routes.Compare.Categories)
	mux.HandleFunc("GET /health", routes.Health.Health)
	mux.Handle("GET /metrics", metrics.MetricsHandler())

	c := cors.New(cors.Options{
		AllowedOrigins: routes.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return middleware.Chain(mux,
		middleware.LoggingMiddleware(log),
		middleware.PrometheusMiddleware,
		c.Handler,
	)
}
