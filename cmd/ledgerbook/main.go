package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ledgerbook/internal/api"
	"ledgerbook/internal/api/handlers"
	"ledgerbook/internal/repository"
	"ledgerbook/internal/service"
	"ledgerbook/pkg/config"
	"ledgerbook/pkg/logger"
	"ledgerbook/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting ledgerbook service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Repositories
	importRepo := repository.NewImportRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	ruleRepo := repository.NewRuleRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	aliasRepo := repository.NewMerchantAliasRepository(db, appLogger)

	// Services
	categorizer := service.NewCategorizerService(ruleRepo, txRepo, appLogger)
	canonicalizer := service.NewCanonicalizerService(aliasRepo, txRepo, appLogger)

	importService := service.NewImportService(importRepo, txRepo, cfg.Import.PreviewRows, appLogger)
	importService.AddHook(service.PostImportHook{Name: "categorize", Run: categorizer.ApplyToImport})
	importService.AddHook(service.PostImportHook{Name: "canonicalize", Run: canonicalizer.ApplyToImport})

	txService := service.NewTransactionService(txRepo, categoryRepo, appLogger)
	ruleService := service.NewRuleService(ruleRepo, categoryRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, appLogger)
	merchantService := service.NewMerchantService(aliasRepo, appLogger)

	// Handlers
	h := api.Handlers{
		Imports:      handlers.NewImportHandler(importService, cfg.Import.MaxCSVBytes, cfg.Import.MaxPDFBytes, appLogger),
		Transactions: handlers.NewTransactionHandler(txService, appLogger),
		Rules:        handlers.NewRuleHandler(ruleService, categorizer, appLogger),
		Categories:   handlers.NewCategoryHandler(categoryService, appLogger),
		Merchants:    handlers.NewMerchantHandler(merchantService, canonicalizer, appLogger),
	}

	app := api.SetupRouter(h, cfg.Auth.APIToken, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
