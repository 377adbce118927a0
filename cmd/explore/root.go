package main

import (
	"time"

	"github.com/NoraMoser/exploring/internal/cache"
	"github.com/NoraMoser/exploring/internal/catalog"
	"github.com/NoraMoser/exploring/internal/config"
	"github.com/NoraMoser/exploring/internal/favorites"
	"github.com/NoraMoser/exploring/internal/restcountries"
	"github.com/NoraMoser/exploring/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options are the persistent flags shared by every subcommand
type options struct {
	baseURL string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse countries from the REST Countries API",
		Long: `explore lists, searches and inspects countries from the terminal.
It uses the same sorting, filtering and pagination as the web pages.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "https://restcountries.com/v3.1", "REST Countries base URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Upstream request timeout")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log upstream and cache activity to stderr")

	rootCmd.AddCommand(newListCmd(opts), newShowCmd(opts))
	return rootCmd
}

// newService wires a service over an in-process cache. The session registry is unused
// by the terminal commands but keeps the service fully initialized.
func (o *options) newService() (*service.Service, func(), error) {
	logger := zap.NewNop()
	if o.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}

	stores := cache.NewMemoryStores()
	client := restcountries.NewClient(config.APIConfig{
		BaseURL: o.baseURL,
		Timeout: o.timeout,
	})
	svc := service.NewService(client, stores.List, stores.Items, favorites.NewRegistry(0), service.Settings{
		TTL:      time.Hour,
		PageSize: catalog.DefaultPageSize,
	}, logger)

	cleanup := func() {
		_ = stores.Close()
		_ = logger.Sync()
	}
	return svc, cleanup, nil
}
