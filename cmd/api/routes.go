package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/calebmoran/weatherdeck/internal/config"
	"github.com/calebmoran/weatherdeck/internal/handlers"
	mw "github.com/calebmoran/weatherdeck/internal/middleware"
	"github.com/calebmoran/weatherdeck/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, handlers, and the middleware chain.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	secret := []byte(cfg.JWTSecret)

	authHandler := &handlers.AuthHandler{
		Repo:     userRepo,
		Secret:   secret,
		TokenTTL: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	userHandler := &handlers.UserHandler{Repo: userRepo}
	locationHandler := &handlers.LocationHandler{Repo: userRepo}
	preferenceHandler := &handlers.PreferenceHandler{Repo: userRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.Recoverer)
	r.Use(mw.RequestLog)
	r.Use(mw.Prometheus)
	r.Use(mw.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := mw.AuthRateLimiter()
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/users/{id}", func(r chi.Router) {
		r.Use(mw.JWTMiddleware(secret))
		r.Use(mw.RequireSelf)
		r.Get("/", userHandler.GetUser)
		r.Get("/locations", locationHandler.ListLocations)
		r.Post("/locations", locationHandler.AddLocation)
		r.Delete("/locations", locationHandler.RemoveLocation)
		r.Get("/metric", preferenceHandler.GetMetric)
		r.Put("/metric", preferenceHandler.SetMetric)
	})

	return r
}
