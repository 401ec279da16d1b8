package routes

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"blueline/reservehub/internal/api"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/db"
	"blueline/reservehub/internal/logging"
	"blueline/reservehub/internal/metrics"
	"blueline/reservehub/internal/middleware"
	"blueline/reservehub/internal/workers"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	enforceCapacity := os.Getenv("ENFORCE_CAPACITY") == "true"
	providerSecret := []byte(os.Getenv("AUTH_PROVIDER_SECRET"))

	redisClient := common.NewRedisClient()

	deps, err := api.InitDependencies(metricsReg, redisClient, enforceCapacity)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Background workers run for the life of the process
	workers.InitWorkers(
		context.Background(),
		db.PgDB,
		deps.Services.Notifications,
		deps.Services.Cache,
		metricsReg,
	)

	RegisterAPIRoutes(r, deps, providerSecret)

	return r
}
