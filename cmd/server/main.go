package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/greenshop/storefront/internal/api"
	"github.com/greenshop/storefront/internal/config"
	"github.com/greenshop/storefront/internal/gateway"
	"github.com/greenshop/storefront/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Remote gateway and session registry
	remote := gateway.NewClient(cfg.Remote, logger)
	sessions := session.NewManager(remote, cfg.Checkout.ShippingFee, logger)

	router := api.NewRouter(cfg, sessions, logger)

	logger.Info("Starting storefront engine",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("remote", cfg.Remote.BaseURL),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
