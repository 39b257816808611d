package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kislikjeka/bookkeeper/internal/platform/party"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/handler"
	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/bookkeeper/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger          *logger.Logger
	AllowedOrigins  []string
	TrustProxy      bool
	AuthHandler     *handler.AuthHandler
	AccountHandler  *handler.AccountHandler
	PartyHandler    *handler.PartyHandler
	DocumentHandler *handler.DocumentHandler
	HealthHandler   *handler.HealthHandler
	JWTMiddleware   func(http.Handler) http.Handler
	// RateLimit overrides the default limiter; tests pass a no-op
	RateLimit func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	rateLimit := cfg.RateLimit
	if rateLimit == nil {
		rateLimit = middleware.RateLimit()
	}

	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(rateLimit)

	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/logout", cfg.AuthHandler.Logout)
		}

		if cfg.JWTMiddleware == nil {
			return
		}

		r.Group(func(r chi.Router) {
			r.Use(cfg.JWTMiddleware)

			if cfg.AuthHandler != nil {
				r.Get("/auth/me", cfg.AuthHandler.Me)
			}

			if cfg.AccountHandler != nil {
				r.Get("/accounts", cfg.AccountHandler.GetAccounts)
				r.Post("/accounts", cfg.AccountHandler.CreateAccount)
			}

			if cfg.PartyHandler != nil {
				r.Get("/customers", cfg.PartyHandler.List(party.KindCustomer))
				r.Post("/customers", cfg.PartyHandler.Create(party.KindCustomer))
				r.Get("/vendors", cfg.PartyHandler.List(party.KindVendor))
				r.Post("/vendors", cfg.PartyHandler.Create(party.KindVendor))
			}

			if cfg.DocumentHandler != nil {
				r.Route("/documents", func(r chi.Router) {
					r.Get("/", cfg.DocumentHandler.GetDocuments)
					r.Post("/", cfg.DocumentHandler.SubmitDocument)
					r.Post("/session", cfg.DocumentHandler.BeginSession)
					r.Get("/{id}", cfg.DocumentHandler.GetDocument)
				})
			}
		})
	})

	return r
}
