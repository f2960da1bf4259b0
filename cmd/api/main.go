package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielotieno/ledgerbook/internal/config"
	"github.com/danielotieno/ledgerbook/internal/handler"
	"github.com/danielotieno/ledgerbook/internal/logging"
	"github.com/danielotieno/ledgerbook/internal/middleware"
	"github.com/danielotieno/ledgerbook/internal/repository"
	"github.com/danielotieno/ledgerbook/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("ledgerbook-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.Connect(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	accountSvc := service.NewAccountService(userRepo, cfg.SignupInviteCode)
	ledgerSvc := service.NewLedgerService(userRepo, txRepo, db)

	jwtExpiry := time.Duration(cfg.JWTExpiryH) * time.Hour
	authH := handler.NewAuthHandler(accountSvc, cfg.JWTSecret, jwtExpiry)
	userH := handler.NewUserHandler(userRepo, accountSvc)
	txH := handler.NewTransactionHandler(ledgerSvc, userRepo)
	healthH := handler.NewHealthHandler(db)
	pages := handler.NewPages()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthH.Liveness)
	mux.HandleFunc("GET /health/ready", healthH.Readiness)

	// Page routes run through the access policy engine; it decides, per
	// navigation, between allow and redirect.
	gate := middleware.PagePolicy(cfg.JWTSecret, userRepo)
	mux.Handle("GET /{$}", gate(http.HandlerFunc(pages.Landing)))
	mux.Handle("GET /login", gate(http.HandlerFunc(pages.Login)))
	mux.Handle("GET /signup", gate(http.HandlerFunc(pages.Signup)))
	mux.Handle("GET /forgot-password", gate(http.HandlerFunc(pages.ForgotPassword)))
	mux.Handle("GET /dashboard", gate(http.HandlerFunc(pages.Dashboard)))
	mux.Handle("GET /admin", gate(http.HandlerFunc(pages.Admin)))
	mux.Handle("GET /transactions/{uid}", gate(http.HandlerFunc(pages.Transactions)))
	// Unlisted paths still go through the gate: deny by default.
	mux.Handle("/", gate(http.HandlerFunc(pages.NotFound)))

	mux.HandleFunc("POST /api/v1/auth/signup", authH.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authH.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authH.Logout)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", authH.ForgotPassword)

	authed := middleware.Auth(cfg.JWTSecret)
	admin := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireAdmin(userRepo)(h))
	}

	mux.Handle("GET /api/v1/users", admin(userH.List))
	mux.Handle("GET /api/v1/users/{id}", authed(http.HandlerFunc(userH.GetByID)))
	mux.Handle("PATCH /api/v1/users/{id}/role", admin(userH.ChangeRole))
	mux.Handle("DELETE /api/v1/users/{id}", admin(userH.Delete))
	mux.Handle("POST /api/v1/users/{id}/transactions", admin(txH.Create))
	mux.Handle("GET /api/v1/users/{id}/transactions", authed(http.HandlerFunc(txH.List)))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
