package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/metlabs/backend/docs"
	"github.com/metlabs/backend/internal/config"
	"github.com/metlabs/backend/internal/handlers"
	mW "github.com/metlabs/backend/internal/middleware"
	"github.com/metlabs/backend/internal/models"
	"github.com/metlabs/backend/internal/services"
	"github.com/metlabs/backend/internal/store"
)

// @title Wallet Backend API
// @version 1.0
// @description Email/password and Google authentication plus a flat-file transaction ledger
// @host localhost:8080
// @BasePath /api
// @schemes http https

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	docs.SwaggerInfo.Title = "Wallet Backend API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Stores: one JSON document per collection.
	userStore := store.NewFileStore[models.User](cfg.UsersDBPath)
	transactionStore := store.NewFileStore[models.Transaction](cfg.TransactionsDBPath)

	authService := services.NewAuthService(userStore, services.NewGoogleVerifier())
	transactionService := services.NewTransactionService(transactionStore)

	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Access-Control-Allow-Origin"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+cfg.Port+"/swagger/doc.json"),
	))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public endpoints (no auth required)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/google", authHandler.GoogleLogin)

			// Protected endpoints (auth required)
			r.Group(func(r chi.Router) {
				r.Use(mW.AuthMiddleware)

				r.Get("/", authHandler.ListUsers)
				r.Get("/{id}", authHandler.GetUser)
				r.Patch("/{id}", authHandler.UpdateUser)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/{userAddress}", transactionHandler.ListByUser)

			r.Group(func(r chi.Router) {
				r.Use(mW.AuthMiddleware)

				r.Post("/", transactionHandler.Add)
			})
		})
	})

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
