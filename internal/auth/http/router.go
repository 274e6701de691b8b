package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
	"github.com/aussiebroadwan/authapp/internal/auth/service"
	"github.com/aussiebroadwan/authapp/internal/auth/store"
	"github.com/aussiebroadwan/authapp/pkg/httpx"
	"github.com/aussiebroadwan/authapp/pkg/slogx"

	_ "github.com/aussiebroadwan/authapp/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	prefix      string
	environment string
	startTime   time.Time
	logger      *slog.Logger

	store        store.Store
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

// NewRouter creates a router whose API routes live under prefix (e.g. "/api").
func NewRouter(
	prefix, environment string,
	allowedOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:         http.NewServeMux(),
		prefix:      prefix,
		environment: environment,
		startTime:   time.Now(),
		store:       st,
		logger:      logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(allowedOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AuthApp Authentication API
//	@version		0.1.0
//	@description	Email + password authentication with optional TOTP second factor.
//	@description
//	@description				Session tokens are HS256 JWTs valid for 7 days.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/authapp
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/api
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.prefix + path
}

// bearer wraps h with token authentication and a lenient per-client bucket.
func (r *Router) bearer(h httpx.AuthedHandlerFunc[domain.Identity]) http.Handler {
	authn := httpx.Authenticator[domain.Identity](r.TokenService.Validate)
	return httpx.Chain(httpx.RequireBearer(authn, h),
		httpx.RateLimitByClient(httpx.LenientLimit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Fixed-window limits for these live in AuthService, keyed per client
	// and action, so no bucket middleware here.
	r.Mux.HandleFunc(r.route(http.MethodPost, "/register"), h.HandleRegister)
	r.Mux.HandleFunc(r.route(http.MethodPost, "/login"), h.HandleLogin)
	r.Mux.HandleFunc(r.route(http.MethodPost, "/login-2fa"), h.HandleLogin2FA)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{AuthService: r.AuthService}

	r.Mux.Handle(r.route(http.MethodPost, "/2fa/setup"), r.bearer(h.HandleSetup))
	r.Mux.Handle(r.route(http.MethodPost, "/2fa/verify"), r.bearer(h.HandleVerify))
	r.Mux.Handle(r.route(http.MethodPost, "/2fa/disable"), r.bearer(h.HandleDisable))
}

func (r *Router) registerUsers() {
	h := &MeHandler{AuthService: r.AuthService}

	r.Mux.Handle(r.route(http.MethodGet, "/me"), r.bearer(h.HandleMe))
}

func (r *Router) registerSystem() {
	// Probes from orchestrators and uptime monitors are never rate limited.
	r.Mux.Handle(r.route(http.MethodGet, "/health"), HealthHandler(r.startTime, r.environment))
	r.Mux.Handle(r.route(http.MethodGet, "/readyz"), ReadyzHandler(r.store))
}
