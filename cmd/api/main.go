package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bookhive/bookhive-go/internal/config"
	"github.com/bookhive/bookhive-go/internal/handler"
	"github.com/bookhive/bookhive-go/internal/middleware"
	"github.com/bookhive/bookhive-go/internal/repository"
	"github.com/bookhive/bookhive-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(bookRepo, txnRepo)
	checkoutService := service.NewCheckoutService(bookRepo, txnRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(catalogService)
	txnHandler := handler.NewTransactionHandler(checkoutService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Public catalog reads.
	r.Get("/api/books", bookHandler.HandleList)
	r.Get("/api/books/{id}/details", bookHandler.HandleDetails)

	// Public auth endpoints, rate limited per IP.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/users/register", authHandler.HandleRegister)
		r.Post("/api/users/login", authHandler.HandleLogin)
	})

	// Authenticated user endpoints.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Get("/api/users/profile", userHandler.HandleProfile)
		r.Put("/api/users/profile", userHandler.HandleUpdateProfile)
		r.Delete("/api/users/unrent/{bookId}", userHandler.HandleUnrent)

		r.Post("/api/transactions", txnHandler.HandleCheckout)
	})

	// Admin-only endpoints.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Use(middleware.RequireAdmin)

		r.Post("/api/books", bookHandler.HandleCreate)
		r.Put("/api/books/{id}", bookHandler.HandleUpdate)
		r.Delete("/api/books/{id}", bookHandler.HandleDelete)

		r.Get("/api/transactions", txnHandler.HandleList)
		r.Get("/api/users", userHandler.HandleList)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
