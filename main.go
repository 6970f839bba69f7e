package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blogem/clients-api/authenticator"
	"github.com/blogem/clients-api/config"
	"github.com/blogem/clients-api/controllers"
	"github.com/blogem/clients-api/database"
	"github.com/blogem/clients-api/logger"
	authmiddleware "github.com/blogem/clients-api/middleware"
	"github.com/blogem/clients-api/repositories"
	"github.com/blogem/clients-api/services"
)

// tokenEarlyExpiry is how long before expiry a cached token is replaced
const tokenEarlyExpiry = 5 * time.Minute

func main() {
	// Load environment variables from .env file when present
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load the env vars: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	factory, err := newFactory(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(database.NewExecutor(factory))

	// Initialize services
	srvs := services.NewServices(repos)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(ctrl),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("clients API starting", "port", cfg.Port, "db_mode", string(cfg.Database.Mode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}

// newFactory builds the connection factory for the configured mode
func newFactory(cfg config.DatabaseConfig) (database.Factory, error) {
	var tokens authenticator.Provider
	if cfg.Mode() == config.ModeCredential {
		provider, err := authenticator.NewManagedIdentityProvider()
		if err != nil {
			return nil, err
		}
		tokens = provider
		if cfg.TokenCache {
			tokens = authenticator.NewCachingProvider(provider, tokenEarlyExpiry)
		}
	}
	return database.NewFactory(cfg, tokens)
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(authmiddleware.Recoverer)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "clients-api"}`)
	})
	r.Handle("/metrics", promhttp.Handler())

	// PROTECTED ROUTES (identity headers required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", ctrl.Clients.Index)
			r.Post("/", ctrl.Clients.Create)
		})
	})

	return r
}
