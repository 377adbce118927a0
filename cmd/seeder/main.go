package main

import (
	"context"
	"log"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/seeder"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if cfg.Cache.Backend == config.CacheBackendMemory {
		logger.Fatal("The memory cache backend lives inside the server; warm it with SEEDER_WARM_ON_START instead")
	}

	ctx := context.Background()
	stores, err := cache.Open(ctx, cfg, "migrations")
	if err != nil {
		logger.Fatal("Failed to open request cache", zap.Error(err))
	}
	defer stores.Close()

	logger.Info("Opened request cache", zap.String("backend", string(cfg.Cache.Backend)))
	logger.Info("Parsing countries...", zap.String("path", cfg.Seeder.DumpPath))

	parser := seeder.NewParser(cfg.Seeder)
	countries, err := parser.ParseCountries()
	if err != nil {
		logger.Fatal("Failed to parse countries", zap.Error(err))
	}
	if parser.Skipped() > 0 {
		logger.Warn("Skipped invalid records", zap.Int("skipped", parser.Skipped()))
	}

	warmer := seeder.NewWarmer(stores.List, stores.Items, cfg.Cache.TTL, logger)
	n, err := warmer.Warm(ctx, countries)
	if err != nil {
		logger.Fatal("Failed to warm request cache", zap.Error(err))
	}

	logger.Info("Data import completed successfully!", zap.Int("countries", n))
}
