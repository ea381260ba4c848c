package main

import (
	"context"
	"net/http"

	"github.com/catalyst/backend/internal/config"
	"github.com/catalyst/backend/internal/handler"
	"github.com/catalyst/backend/internal/repository"
	"github.com/catalyst/backend/internal/service"
	"github.com/catalyst/backend/internal/storage"
	"github.com/catalyst/backend/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	loginPath     = "/admin/login"
	uploadsPrefix = "/admin/uploads"
)

// newRouter wires the services over store into the HTTP routes. The rate
// limiter's cleanup goroutine stops when ctx is cancelled.
func newRouter(ctx context.Context, cfg *config.Config, store *repository.Store) http.Handler {
	projectService := service.NewProjectService(store.Projects)
	contactService := service.NewContactService(store.Contacts)
	intakeService := service.NewIntakeService(store.Projects, store.Contacts)
	statsService := service.NewStatsService(store.Projects, store.Contacts)

	secret := auth.SessionSecretBytes(cfg.SessionSecret)
	authenticator := auth.NewAuthenticator(cfg.Staff, secret, cfg.SessionTTL)

	var files storage.Storage
	if cfg.UploadDir != "" {
		files = storage.NewLocalStorage(cfg.UploadDir, uploadsPrefix)
	}

	h := handler.New(store.DB, cfg.FrontendURL)
	intakeHandler := handler.NewIntakeHandler(intakeService, files)
	authHandler := handler.NewAuthHandler(authenticator, cfg.SecureCookies)
	dashboardHandler := handler.NewDashboardHandler(statsService)
	projectHandler := handler.NewAdminProjectHandler(projectService, statsService)
	contactHandler := handler.NewAdminContactHandler(contactService, statsService)

	limiter := handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute)
	limiter.SetTrustedProxyCount(cfg.TrustedProxyCount)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(handler.RequestLogger)
	r.Use(handler.SecurityHeaders)
	r.Use(h.CORS)
	r.Use(auth.Session(secret))

	r.Get("/api/health", h.Health)

	// Public intake. Any method reaches the handler so it can answer 405 itself.
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.HandleFunc("/submit-project", intakeHandler.SubmitProject)
		r.HandleFunc("/submit-contact", intakeHandler.SubmitContact)
	})

	r.With(limiter.Middleware).Post(loginPath, authHandler.Login)
	r.Post("/admin/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireStaff(loginPath))

		r.Get("/admin/dashboard", dashboardHandler.Show)
		if cfg.UploadDir != "" {
			r.Get(uploadsPrefix+"/*", handler.Attachments(uploadsPrefix, cfg.UploadDir))
		}

		r.Route("/api/admin/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Get("/stats", projectHandler.Stats)
			r.Post("/actions", projectHandler.Actions)
			r.Get("/{id}", projectHandler.Get)
			r.Patch("/{id}", projectHandler.Update)
		})
		r.Route("/api/admin/contacts", func(r chi.Router) {
			r.Get("/", contactHandler.List)
			r.Get("/stats", contactHandler.Stats)
			r.Post("/actions", contactHandler.Actions)
			r.Get("/{id}", contactHandler.Get)
			r.Patch("/{id}", contactHandler.Update)
		})
	})

	return r
}
