package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finsight/internal/api"
	"finsight/internal/api/handlers"
	"finsight/internal/repository"
	"finsight/internal/service"
	"finsight/pkg/config"
	"finsight/pkg/identity"
	"finsight/pkg/logger"
	"finsight/pkg/postgres"

	"go.uber.org/zap"
)

// @title Finsight API
// @version 1.0
// @description AI-assisted expense insight service

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finsight service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	insightRepo := repository.NewInsightRepository(db, appLogger)

	// Initialize session verifier
	verifier := identity.NewVerifier(&cfg.Identity)

	// Initialize services
	llmService, err := service.NewLLMService(ctx, &cfg.GigaChat, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	insightService := service.NewInsightService(llmService, insightRepo, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	provisionService := service.NewProvisionService(verifier, userRepo, appLogger)

	// Initialize handlers
	insightHandler := handlers.NewInsightHandler(insightService, expenseService, provisionService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, provisionService, appLogger)
	userHandler := handlers.NewUserHandler(provisionService, appLogger)

	// Setup router
	app := api.SetupRouter(insightHandler, expenseHandler, userHandler, verifier, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
