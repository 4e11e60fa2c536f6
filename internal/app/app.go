package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/symphogen/mimer-admin/internal/config"
	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/handler"
	"github.com/symphogen/mimer-admin/internal/identity"
	"github.com/symphogen/mimer-admin/internal/middleware"
	"github.com/symphogen/mimer-admin/internal/prefs"
	"github.com/symphogen/mimer-admin/internal/service"
	"github.com/symphogen/mimer-admin/internal/store"
	"github.com/symphogen/mimer-admin/internal/testdata"
)

// App holds the application and all of its dependencies.
type App struct {
	config *config.Config
	logger *slog.Logger
	store  *store.Client
	server *http.Server
}

// New creates the application.
func New(cfg *config.Config) (*App, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return &App{config: cfg, logger: logger}, nil
}

// Initialize connects the backing stores and wires the HTTP server.
func (a *App) Initialize(ctx context.Context) error {
	storeClient, err := store.New(ctx, map[domain.Environment]string{
		domain.EnvSB1: a.config.Store.SB1DSN,
		domain.EnvQA:  a.config.Store.QADSN,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to connect document store: %w", err)
	}
	a.store = storeClient
	a.logger.Info("document store connected", "environments", storeClient.Environments())

	kv, err := a.openKV()
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}

	preferences := prefs.New(kv, a.logger)
	if err := preferences.Load(ctx); err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	a.setupServer(preferences)

	a.logger.Info("application initialized")
	return nil
}

// openKV prefers redis and falls back to the process-local store when no
// redis address is configured.
func (a *App) openKV() (prefs.KV, error) {
	if a.config.Redis.Addr == "" {
		a.logger.Warn("no redis configured, preferences will not survive restarts")
		return prefs.NewMemoryKV(), nil
	}
	kv, err := prefs.NewRedisKV(a.config.Redis.Addr, a.config.Redis.Password, a.config.Redis.DB)
	if err != nil {
		return nil, err
	}
	a.logger.Info("preference store connected", "addr", a.config.Redis.Addr)
	return kv, nil
}

// setupServer wires services, handlers and routing.
func (a *App) setupServer(preferences *prefs.Preferences) {
	generator := testdata.New(preferences, a.logger)

	userService := service.NewUserService(a.logger, preferences, a.store, generator)
	teamService := service.NewTeamService(a.logger, preferences, a.store, generator)
	configService := service.NewWorkflowConfigurationService(a.logger, preferences, a.store, generator)
	consistencyService := service.NewConsistencyService(a.logger, userService, teamService, configService)

	identityClient := identity.NewClient(a.config.Auth.IdentityBaseURL, a.logger)
	verifier := identity.NewTokenVerifier(a.config.Auth.JWTSecret)

	userHandler := handler.NewUserHandler(a.logger, userService, teamService)
	teamHandler := handler.NewTeamHandler(a.logger, teamService, userService, configService)
	configHandler := handler.NewWorkflowConfigurationHandler(a.logger, configService)
	prefsHandler := handler.NewPreferencesHandler(a.logger, preferences)
	userInfoHandler := handler.NewUserInfoHandler(a.logger, identityClient)
	consistencyHandler := handler.NewConsistencyHandler(a.logger, consistencyService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerToken(verifier))
		r.Use(middleware.RequireDomain(identityClient, a.config.Auth.AllowedDomains))

		r.Get("/me", userInfoHandler.Me)

		r.Get("/preferences", prefsHandler.Get)
		r.Post("/preferences", prefsHandler.Set)

		r.Get("/users/get", userHandler.Get)
		r.Post("/users/save", userHandler.Save)
		r.Post("/users/delete", userHandler.Delete)
		r.Post("/users/validate", userHandler.Validate)

		r.Get("/teams/get", teamHandler.Get)
		r.Post("/teams/save", teamHandler.Save)
		r.Post("/teams/delete", teamHandler.Delete)
		r.Post("/teams/validate", teamHandler.Validate)

		r.Get("/workflow-configurations/get", configHandler.Get)
		r.Post("/workflow-configurations/save", configHandler.Save)
		r.Post("/workflow-configurations/delete", configHandler.Delete)

		r.Get("/consistency", consistencyHandler.Report)
	})

	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("http server configured", "addr", addr)
}

// Run starts the HTTP server.
func (a *App) Run() error {
	a.logger.Info("starting http server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown stops the server and closes the store connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down application")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if a.store != nil {
		a.store.Close()
	}

	a.logger.Info("application stopped gracefully")
	return nil
}
