package main

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"flightadmin/application"
	"flightadmin/database"
	"flightadmin/domain/contracts"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/infrastructure/config"
	"flightadmin/infrastructure/repositories"
	"flightadmin/interfaces/web/handlers"
	"flightadmin/interfaces/web/presenters"
	templates "flightadmin/interfaces/web/templates"
	"flightadmin/logging"
)

// sessionPurgeInterval is how often expired sessions are removed from the store.
const sessionPurgeInterval = 10 * time.Minute

func main() {
	// Create app-wide context for graceful shutdown
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db := initializeDatabase(cfg, logger)
	defer db.Close()

	// Build dependencies with app context
	deps := buildDependencies(cfg, db, logger)
	go purgeExpiredSessions(appCtx, deps.Services.Auth, logger)

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, appCancel)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	Auth          *application.AuthService
	Users         *application.UserService
	Roles         *application.RoleService
	Bookings      *application.BookingService
	Configuration *application.ConfigurationService
	Countries     *application.CountryService
	Screens       *application.ScreenRegistry
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	Sessions *handlers.SessionManager

	// Handlers
	AuthHandlers          *handlers.AuthHandlers
	UserHandlers          *handlers.UserHandlers
	RoleHandlers          *handlers.RoleHandlers
	BookingHandlers       *handlers.BookingHandlers
	ConfigurationHandlers *handlers.ConfigurationHandlers
	SystemHandlers        *handlers.SystemHandlers
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	DB     *database.Database
	Client *apiclient.Client
	Logger *logging.Logger

	// Repositories
	SessionRepo contracts.SessionRepository

	// Application Layer
	Services *ApplicationServices

	// Presentation Layer
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
		"api_base_url", cfg.API.BaseURL,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

// buildApplicationServices creates application services over the API client.
func buildApplicationServices(cfg *config.AppConfig, client *apiclient.Client, sessions contracts.SessionRepository) *ApplicationServices {
	countries := application.NewCountryService(client, cfg.Cache.CountryCacheTTL)
	screens := application.NewScreenRegistry(cfg.Cache.ScreenIdleTTL, func() *application.ScreenSet {
		return application.NewScreenSet(client, client, client)
	})

	return &ApplicationServices{
		Auth:          application.NewAuthService(client, sessions, cfg.Session.TTL),
		Users:         application.NewUserService(client, client, countries),
		Roles:         application.NewRoleService(client),
		Bookings:      application.NewBookingService(client),
		Configuration: application.NewConfigurationService(client),
		Countries:     countries,
		Screens:       screens,
	}
}

// buildPresentationLayer creates all presenters and handlers
func buildPresentationLayer(cfg *config.AppConfig, db *database.Database, services *ApplicationServices) *PresentationLayer {
	// Build presenters (view logic)
	toastPresenter := presenters.NewToastPresenter()
	userPresenter := presenters.NewUserPresenter()
	rolePresenter := presenters.NewRolePresenter()
	bookingPresenter := presenters.NewBookingPresenter()
	configurationPresenter := presenters.NewConfigurationPresenter()

	// Build handlers - orchestrate services & presenters
	sessions := handlers.NewSessionManager(services.Auth, services.Screens, cfg.Session.CookieName, cfg.Session.SecureCookie)
	base := handlers.NewBase(sessions, toastPresenter)

	return &PresentationLayer{
		Sessions:              sessions,
		AuthHandlers:          handlers.NewAuthHandlers(base, services.Auth, services.Users, userPresenter),
		UserHandlers:          handlers.NewUserHandlers(base, services.Users, userPresenter),
		RoleHandlers:          handlers.NewRoleHandlers(base, services.Roles, rolePresenter),
		BookingHandlers:       handlers.NewBookingHandlers(base, services.Bookings, bookingPresenter),
		ConfigurationHandlers: handlers.NewConfigurationHandlers(base, services.Configuration, configurationPresenter),
		SystemHandlers:        handlers.NewSystemHandlers(db, embeddedAssets(), cfg.AssetsDir),
	}
}

// buildDependencies creates all application dependencies
func buildDependencies(cfg *config.AppConfig, db *database.Database, logger *logging.Logger) *Dependencies {
	sessionRepo := repositories.NewSessionRepository(db)
	client := apiclient.New(*cfg.API, application.NewSessionTokenSource(sessionRepo))

	// Build each layer
	services := buildApplicationServices(cfg, client, sessionRepo)
	presentation := buildPresentationLayer(cfg, db, services)

	return &Dependencies{
		DB:           db,
		Client:       client,
		Logger:       logger,
		SessionRepo:  sessionRepo,
		Services:     services,
		Presentation: presentation,
	}
}

func embeddedAssets() fs.FS {
	sub, err := fs.Sub(templates.FS, "assets")
	if err != nil {
		return templates.FS
	}
	return sub
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()
	p := deps.Presentation

	// Middleware
	r.Use(middleware.RequestID)
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	// System endpoints and static assets
	p.SystemHandlers.Mount(r)

	// Dashboard routes resolve the session cookie first
	r.Group(func(r chi.Router) {
		r.Use(p.Sessions.Load)

		r.Group(func(r chi.Router) {
			r.Use(p.Sessions.RedirectIfSignedIn)
			p.AuthHandlers.MountPublic(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(p.Sessions.RequireSession)
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/home", http.StatusSeeOther)
			})
			p.AuthHandlers.Mount(r)
			p.UserHandlers.Mount(r)
			p.RoleHandlers.Mount(r)
			p.BookingHandlers.Mount(r)
			p.ConfigurationHandlers.Mount(r)
		})
	})

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("flightadmin", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

// purgeExpiredSessions removes expired sessions until ctx is cancelled.
func purgeExpiredSessions(ctx context.Context, auth *application.AuthService, logger *logging.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Error("Failed to purge expired sessions", "error", err)
			}
		}
	}
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, appCancel context.CancelFunc) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		// Cancel app-wide context first to stop background work
		logger.Info("Cancelling app context...")
		appCancel()

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
