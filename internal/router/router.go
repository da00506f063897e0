// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// portfolio server. It organizes routes into public, API, and studio
// groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/session"
	"portfolio/web"
)

// Options carries the dependencies and feature switches for route setup.
type Options struct {
	Sessions *session.Store
	Auth     *handlers.Auth
	Studio   *handlers.Studio
	Public   *handlers.Public
	TwoFA    bool // mounts the 2FA routes and gate when true
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Sessions))

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Login attempts are rate limited per IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Studio routes: CSRF protection throughout, auth for the work area.
	r.Route("/studio", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages, accessible without a session.
		r.Get("/login", opts.Auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", opts.Auth.LoginSubmit)
		r.Post("/logout", opts.Auth.Logout)

		// 2FA enrollment and verification: requires auth but NOT
		// completed 2FA.
		if opts.TwoFA {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/2fa/setup", opts.Auth.TwoFASetupPage)
				r.Post("/2fa/setup", opts.Auth.TwoFAVerifySubmit)
				r.Get("/2fa/verify", opts.Auth.TwoFAVerifyPage)
				r.Post("/2fa/verify", opts.Auth.TwoFAVerifySubmit)
			})
		}

		// Authenticated studio area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			if opts.TwoFA {
				r.Use(middleware.Require2FA)
			}

			r.Get("/", redirectTo("/studio/projects"))

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", opts.Studio.Projects)
				r.Get("/new", opts.Studio.NewProject)
				r.Post("/", opts.Studio.CreateProject)
				r.Get("/{id}/edit", opts.Studio.EditProject)
				r.Post("/{id}/edit", opts.Studio.UpdateProject)
				r.Post("/{id}/delete", opts.Studio.DeleteProject)
			})

			r.Get("/categories", opts.Studio.Categories)

			r.Route("/media", func(r chi.Router) {
				r.Get("/", opts.Studio.Media)
				r.Post("/{id}/delete", opts.Studio.DeleteMedia)
			})

			r.Post("/upload", opts.Studio.Upload)
		})
	})

	// View counter API, called by the gallery script.
	r.Post("/api/projects/{id}/views", opts.Public.IncrementViews)

	// Static assets from the embedded filesystem.
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Public gallery.
	r.Get("/", opts.Public.Gallery)

	return r
}

// redirectTo returns a handler that redirects to the given path.
func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
