// Command s-r-portfolio serves the blogging REST API: users, blog posts and
// comments with JWT authentication and role-based access control. This file
// wires configuration, the database pool, migrations, services and the HTTP
// router, and handles graceful shutdown.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/auth"
	"github.com/nora-sch/s-r-portfolio/comments"
	"github.com/nora-sch/s-r-portfolio/config"
	"github.com/nora-sch/s-r-portfolio/db"
	"github.com/nora-sch/s-r-portfolio/logger"
	"github.com/nora-sch/s-r-portfolio/posts"
	"github.com/nora-sch/s-r-portfolio/users"
)

func main() {
	// .env is a development convenience; in production the variables are set
	// directly.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: .env file not found or error loading it: %v\n", err)
	}

	log := logger.New()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Services and handlers, wired by hand. The auth service doubles as the
	// token issuer for the password-reset flow.
	authService := auth.NewAuthService(pool, *cfg.Auth, log)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(pool, authService, log)
	userHandlers := users.NewUserHandlers(userService)

	postService := posts.NewPostService(pool, log)
	postHandlers := posts.NewPostHandlers(postService)

	commentService := comments.NewCommentService(pool, log)
	commentHandlers := comments.NewCommentHandlers(commentService)

	jwtMiddleware := auth.JWTMiddleware(authService)

	r := chi.NewRouter()

	// Global middleware. Chi requires all middleware to be registered before
	// any routes.
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(requestLogger(log))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that keeps error responses in the apperror shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error().Interface("panic", rvr).Msg("panic in handler")
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/refresh", authHandlers.HandleRefreshToken())
	})

	// User routes: registration is public, everything else requires a token.
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandlers.HandleRegister())

		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware)
			r.Get("/{id}", userHandlers.HandleGetProfile())
			r.Put("/{id}", userHandlers.HandleUpdateProfile())
			r.Put("/{id}/reset-password", userHandlers.HandleResetPassword())
		})
	})

	// Blog routes: reads are public, writes are role-gated behind the token
	// middleware (the policy itself lives in authz).
	r.Route("/blog", func(r chi.Router) {
		r.Get("/", postHandlers.HandleList())
		r.Get("/{page}", postHandlers.HandleList())
		r.Get("/post/id/{id}", postHandlers.HandleGetByID())
		r.Get("/post/{slug}", postHandlers.HandleGetBySlug())

		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware)
			r.Post("/add", postHandlers.HandleCreate())
			r.Put("/edit/{id}", postHandlers.HandleUpdate())
			r.Delete("/delete/{id}", postHandlers.HandleDelete())
		})
	})

	// Comment routes: reads public, writes authenticated.
	r.Route("/comments", func(r chi.Router) {
		commentHandlers.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware)
			commentHandlers.RegisterProtectedRoutes(r)
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped gracefully")
}

// requestLogger logs every request with its status and duration.
func requestLogger(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// writeError is a local helper for the panic recovery middleware; handlers
// use auth.WriteError instead.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
