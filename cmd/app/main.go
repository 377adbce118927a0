package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NoraMoser/exploring/internal/api"
	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/favorites"
	"github.com/NoraMoser/exploring/internal/logger"
	"github.com/NoraMoser/exploring/internal/restcountries"
	"github.com/NoraMoser/exploring/internal/seeder"
	"github.com/NoraMoser/exploring/internal/service"
	"github.com/NoraMoser/exploring/internal/stats"
	"github.com/NoraMoser/exploring/internal/web"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := cache.Open(ctx, cfg, "migrations")
	if err != nil {
		logger.Fatal("Failed to open request cache", zap.Error(err))
	}
	defer stores.Close()
	logger.Info("Request cache ready",
		zap.String("backend", string(cfg.Cache.Backend)),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	if cfg.Seeder.WarmOnStart {
		warmCache(ctx, cfg, stores, logger)
	}

	registry := favorites.NewRegistry(cfg.Favorites.SessionIdle)
	go registry.Run(ctx, cfg.Favorites.SweepInterval, func(removed int) {
		logger.Info("Dropped idle favorites sessions", zap.Int("sessions", removed))
	})
	if stores.DB != nil {
		go purgeExpired(ctx, stores, cfg.Favorites.SweepInterval, logger)
	}

	client := restcountries.NewClient(cfg.API)
	svc := service.NewService(client, stores.List, stores.Items, registry, service.Settings{
		TTL:      cfg.Cache.TTL,
		PageSize: cfg.Catalog.PageSize,
	}, logger)

	renderer, err := web.NewRenderer(logger)
	if err != nil {
		logger.Fatal("Failed to load templates", zap.Error(err))
	}
	statsCollector := stats.NewCollector(stores.DB, cfg.DB, cfg.Cache.Backend, svc)
	router := api.NewRouter(svc, renderer, statsCollector, api.Options{
		SessionCookie: cfg.Server.SessionCookie,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// warmCache loads the local dump into the request cache. A missing dump is not an error.
func warmCache(ctx context.Context, cfg *config.Config, stores *cache.Stores, logger *zap.Logger) {
	if _, err := os.Stat(cfg.Seeder.DumpPath); errors.Is(err, os.ErrNotExist) {
		logger.Info("No country dump found, skipping warm-up", zap.String("path", cfg.Seeder.DumpPath))
		return
	}

	parser := seeder.NewParser(cfg.Seeder)
	countries, err := parser.ParseCountries()
	if err != nil {
		logger.Warn("Failed to parse country dump", zap.Error(err))
		return
	}
	if parser.Skipped() > 0 {
		logger.Warn("Skipped invalid records in country dump", zap.Int("skipped", parser.Skipped()))
	}

	warmer := seeder.NewWarmer(stores.List, stores.Items, cfg.Cache.TTL, logger)
	if _, err := warmer.Warm(ctx, countries); err != nil {
		logger.Warn("Failed to warm request cache", zap.Error(err))
	}
}

func purgeExpired(ctx context.Context, stores *cache.Stores, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := stores.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("Failed to purge expired cache entries", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Purged expired cache entries", zap.Int64("entries", n))
			}
		}
	}
}
