package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remitdesk/internal/config"
	"remitdesk/internal/database"
	"remitdesk/internal/handler"
	"remitdesk/internal/promo"
	"remitdesk/internal/repository"
	"remitdesk/internal/router"
	"remitdesk/internal/service"
	"remitdesk/internal/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting remitdesk promo API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the seed promo catalog. A configured seed path is read through
	// the S3/local fallback loader; otherwise the built-in demo catalog
	// is used.
	catalog := promo.DefaultCatalog()
	if cfg.Promo.SeedPath != "" {
		fileLoader := promo.NewFileLoader(logger)
		var catalogLoader promo.Loader = fileLoader

		if cfg.S3.Enabled {
			s3Loader, err := promo.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
			} else {
				catalogLoader = promo.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
			}
		}

		catalog, err = catalogLoader.Load(ctx, cfg.Promo.SeedPath)
		if err != nil {
			return fmt.Errorf("failed to load promo catalog: %w", err)
		}
	}

	// Initialize the promo store: postgres-backed when the database is
	// enabled, otherwise the in-memory registry.
	var store promo.Store
	if cfg.Database.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()

		repo := repository.NewPromoRepository(pool, logger)
		if err := repo.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate promo schema: %w", err)
		}
		if err := repo.SeedCatalog(ctx, catalog); err != nil {
			return fmt.Errorf("failed to seed promo catalog: %w", err)
		}
		store = repo
	} else {
		store = promo.NewRegistry(catalog, logger)
	}

	// Initialize core components
	evaluator := promo.NewEvaluator(store, logger)
	walletStore := wallet.NewMemoryStore(logger)

	// Initialize services
	promoService := service.NewPromoService(store, evaluator, walletStore, cfg.Promo.DemoUserID, logger)
	walletService := service.NewWalletService(walletStore, cfg.Promo.BonusCurrency, logger)

	// Initialize HTTP handlers
	promoHandler := handler.NewPromoHandler(promoService, logger)
	walletHandler := handler.NewWalletHandler(walletService, logger)

	// Initialize router
	mux := router.New(promoHandler, walletHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
