package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/stats"
	"github.com/olekukonko/tablewriter"
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

	ctx := context.Background()
	stores, err := cache.Open(ctx, cfg, "migrations")
	if err != nil {
		logger.Fatal("Failed to open request cache", zap.Error(err))
	}
	defer stores.Close()

	logger.Info("Collecting statistics...", zap.String("cache_backend", string(cfg.Cache.Backend)))

	collector := stats.NewCollector(stores.DB, cfg.DB, cfg.Cache.Backend, nil)

	statistics, err := collector.Collect(ctx)
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	outputFormat := os.Getenv("OUTPUT_FORMAT")
	if outputFormat == "" {
		outputFormat = "json"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Application Statistics ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Println()

	fmt.Println("--- Memory Statistics ---")
	fmt.Printf("Allocated:        %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Total Allocated:  %s\n", formatBytes(s.Memory.TotalAlloc))
	fmt.Println()

	fmt.Println("--- Request Cache ---")
	fmt.Printf("Backend:         %s\n", s.Cache.Backend)
	if s.Database != nil {
		fmt.Printf("Database:        %s\n", s.Database.Type)
		fmt.Printf("Total Entries:   %d\n", s.Database.TotalRecords)
		fmt.Printf("Expired Entries: %d\n", s.Database.ExpiredEntries)
		fmt.Println()

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Table", "Rows", "Size"})
		for _, ts := range s.Database.TableStats {
			size := "-"
			if ts.SizeBytes > 0 {
				size = formatBytes(uint64(ts.SizeBytes))
			}
			table.Append([]string{ts.Name, strconv.FormatInt(ts.RowCount, 10), size})
		}
		table.Render()
	}
	fmt.Println()

	fmt.Println("--- Runtime Statistics ---")
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Uptime:          %ds\n", s.Runtime.UptimeSeconds)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
