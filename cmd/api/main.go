package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digital-storefront/internal/cache"
	"digital-storefront/internal/client"
	"digital-storefront/internal/config"
	"digital-storefront/internal/logger"
	"digital-storefront/internal/metrics"
	"digital-storefront/internal/notification"
	"digital-storefront/internal/repository"
	"digital-storefront/internal/server"
	"digital-storefront/internal/service"
	"digital-storefront/internal/storage"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Log, cfg.Environment.Name)
	metrics.Register(prometheus.DefaultRegisterer)

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := client.InitRedisClient(ctx, &cfg.Redis)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, product cache disabled")
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)
	emailClient := client.NewEmailClient(&cfg.Resend)
	receiptSender := notification.NewReceiptSender(emailClient, cfg.BaseURL)
	assetStore := storage.NewLocalStore(cfg.Storage.PrivateDir, cfg.Storage.PublicDir)
	productCache := cache.NewProductCache(rdb)

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	verificationRepo := repository.NewDownloadVerificationRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	services := server.Services{
		Checkout: service.NewCheckoutService(
			db, stripeClient, cfg.BaseURL,
			productRepo,
			orderRepo,
			verificationRepo,
		),
		Webhook: service.NewWebhookService(
			db, stripeClient, receiptSender,
			productRepo,
			userRepo,
			orderRepo,
			verificationRepo,
			webhookEventRepo,
			log.With().Str("component", "webhook").Logger(),
		),
		Download: service.NewDownloadService(verificationRepo, assetStore),
		Catalog:  service.NewCatalogService(productRepo, productCache, log),
		Admin: service.NewAdminService(
			db,
			productRepo,
			orderRepo,
			userRepo,
			verificationRepo,
			assetStore,
			productCache,
			log.With().Str("component", "admin").Logger(),
		),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg, services, log)

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
