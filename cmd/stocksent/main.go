// stocksent — stock sentiment analysis dashboard backend.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pranavdhawann/stock-sentiment-analysis/api"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/analysis/sentiment"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/config"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/datasource"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/engine"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stocksent",
	Short: "Stock sentiment analysis dashboard backend",
	Long: `stocksent analyzes recent news coverage for a stock ticker and
serves a dashboard API with sentiment labels, key points, keyword
clouds, and price history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; ignore a missing file.
		godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stocksent %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		srv, err := buildServer(cfg, log)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(cfg.API.Addr())
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Short: "Analyze a symbol and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		eng, _, err := buildEngine(cfg, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		result, err := eng.Analyze(ctx, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// --- Wiring ---

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Logging.Format == "text" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err == nil {
		zcfg.Level = level
	}
	return zcfg.Build()
}

func buildEngine(cfg *config.Config, log *zap.Logger) (*engine.Engine, *catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	timeout := time.Duration(cfg.Providers.FetchTimeoutSec) * time.Second

	priceChain := datasource.NewPriceChain(log, timeout,
		datasource.NewYahooPrices(cfg.Providers.PriceRange, cfg.Providers.PriceInterval),
		datasource.NewSyntheticPrices(),
	)
	newsChain := datasource.NewNewsChain(log, cfg.Providers.MinRelevantNews, timeout,
		datasource.NewRSSNews(cfg.Providers.NewsLimit),
		datasource.NewScrapeNews(cfg.Providers.NewsLimit, timeout),
		datasource.NewTemplateNews(),
	)

	series := sentiment.NewSeriesGenerator(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
	return engine.New(cat, priceChain, newsChain, series, log), cat, nil
}

func buildServer(cfg *config.Config, log *zap.Logger) (*api.Server, error) {
	eng, cat, err := buildEngine(cfg, log)
	if err != nil {
		return nil, err
	}
	return api.NewServer(cfg, cat, eng, log), nil
}
