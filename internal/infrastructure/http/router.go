package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lverg/accountkit/internal/infrastructure/http/handlers"
	"github.com/lverg/accountkit/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AccountHandler *handlers.AccountHandler
	HealthHandler  *handlers.HealthHandler
	UsersHandler   *handlers.UsersHandler
	RequireSession func(http.Handler) http.Handler // bearer credential for /users/*
	OAuthBegin     http.HandlerFunc                // GET /auth/{provider}
	OAuthCallback  http.HandlerFunc                // GET /auth/{provider}/callback
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AccountHandler.Register)
		r.Post("/login", cfg.AccountHandler.Login)
		r.Get("/confirm/{token}", cfg.AccountHandler.Confirm)
		r.Post("/forgot-password", cfg.AccountHandler.ForgotPassword)
		r.Get("/reset/{token}", cfg.AccountHandler.CheckResetToken)
		r.Post("/reset/{token}", cfg.AccountHandler.ResetPassword)
		if cfg.OAuthBegin != nil {
			r.Get("/{provider}", cfg.OAuthBegin)
		}
		if cfg.OAuthCallback != nil {
			r.Get("/{provider}/callback", cfg.OAuthCallback)
		}
	})

	if cfg.UsersHandler != nil && cfg.RequireSession != nil {
		r.Route("/users", func(r chi.Router) {
			r.Use(cfg.RequireSession)
			r.Get("/me", cfg.UsersHandler.Me)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
