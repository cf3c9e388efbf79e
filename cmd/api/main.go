package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/student-records/internal/auth"
	"github.com/crucial707/student-records/internal/config"
	"github.com/crucial707/student-records/internal/handlers"
	"github.com/crucial707/student-records/internal/middleware"
	"github.com/crucial707/student-records/internal/repo"
	"github.com/crucial707/student-records/internal/scheduler"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	creds, err := auth.NewStaticCredentials(cfg.AuthUsername, cfg.AuthPassword, cfg.BcryptCost)
	if err != nil {
		slog.Error("init credentials", "error", err)
		os.Exit(1)
	}
	slog.Info("credentials loaded", "username", creds.Username())
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireMinutes)*time.Minute)
	store := repo.NewStudentRepo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StatsSchedule != "" {
		if _, err := scheduler.Start(ctx, cfg.StatsSchedule, scheduler.StoreStats(store)); err != nil {
			slog.Error("start stats scheduler", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(store, creds, tokens, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newRouter wires the public and bearer-protected routes over the given store.
func newRouter(store handlers.StudentStore, creds auth.Credentials, tokens *auth.TokenService, cfg config.Config) http.Handler {
	authHandler := &handlers.AuthHandler{Credentials: creds, Tokens: tokens}
	studentHandler := &handlers.StudentHandler{Repo: store}
	indexHandler := &handlers.IndexHandler{Author: cfg.Author}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	// Public
	r.Get("/", indexHandler.Index)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/login", authHandler.Login)

	// Protected
	r.Route("/students/{id}", func(r chi.Router) {
		r.Use(middleware.Authenticator(tokens))
		r.Post("/", studentHandler.CreateStudent)
		r.Get("/", studentHandler.GetStudent)
		r.Put("/", studentHandler.UpdateStudent)
		r.Delete("/", studentHandler.DeleteStudent)
	})

	return r
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Env == "dev" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
