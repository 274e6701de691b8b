package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpapi "github.com/aussiebroadwan/authapp/internal/auth/http"
	"github.com/aussiebroadwan/authapp/internal/auth/service"
	"github.com/aussiebroadwan/authapp/internal/auth/store"
	"github.com/aussiebroadwan/authapp/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/authapp/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/authapp/pkg/cryptox"
	"github.com/aussiebroadwan/authapp/pkg/ratelimit"
	"github.com/aussiebroadwan/authapp/pkg/slogx"
	"github.com/aussiebroadwan/authapp/pkg/totpx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	tokenIssuer = "authapp"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	redis   *redis.Client // nil unless the redis rate limit backend is used
	limiter ratelimit.Limiter
	secret  []byte
	pepper  string

	// Services
	tokenService *service.TokenService
	authService  *service.AuthService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// Option customises New. Mostly useful in tests.
type Option func(*Application)

// WithLogOutput sends logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(app *Application) {
		app.logger = slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     app.cfg.Env,
			Level:   app.cfg.LogLevel,
			Format:  app.cfg.LogFormat,
			Output:  w,
		})
	}
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &Application{cfg: cfg}
	WithLogOutput(nil)(app)
	for _, opt := range opts {
		opt(app)
	}

	ctx := context.Background()

	if err := app.initSecrets(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initLimiter(ctx); err != nil {
		app.closeResources()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeResources()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"rate_limit_backend", app.cfg.RateLimitBackend,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeResources()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeResources(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// closeResources releases the redis client and the database pool.
func (app *Application) closeResources() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
		app.redis = nil
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			return err
		}
		app.db = nil
	}
	return nil
}

// initSecrets loads the pepper and the token signing secret. Outside
// production a missing secret is replaced by a random one, so every restart
// invalidates issued tokens.
func (app *Application) initSecrets() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.pepper = pepper

	if app.cfg.JWTSecret != "" {
		app.secret = []byte(app.cfg.JWTSecret)
		return nil
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return fmt.Errorf("failed to generate ephemeral jwt secret: %w", err)
	}
	app.secret = []byte(secret)
	app.logger.Warn("AUTH_JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.DSN(app.cfg.DatabasePath))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		app.db = nil
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initLimiter builds the fixed-window counter store for login and register.
func (app *Application) initLimiter(ctx context.Context) error {
	if app.cfg.RateLimitBackend != BackendRedis {
		app.limiter = ratelimit.NewMemory()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.redis = client
	app.limiter = ratelimit.NewRedis(client, "")
	app.logger.Info("redis rate limit backend connected", "addr", app.cfg.RedisAddr)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	tokens, err := service.NewTokenService(app.secret, tokenIssuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokenService = tokens

	app.authService = &service.AuthService{
		Store:   app.db,
		Hasher:  cryptox.NewPasswordHasher(app.pepper),
		TOTP:    totpx.NewEngine(app.cfg.TOTPIssuer),
		Tokens:  tokens,
		Limiter: app.limiter,
		Limits: service.NewLimits(
			app.cfg.RateLimitRegisterMax,
			app.cfg.RateLimitLoginMax,
			app.cfg.RateLimitLogin2FAMax,
			app.cfg.RateLimitWindow,
		),
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.APIPrefix,
		app.cfg.Env,
		app.cfg.AllowedOrigins,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.AuthService = app.authService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
