package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cicekzamani/catalog/config"
	"github.com/cicekzamani/catalog/fetch"
	"github.com/cicekzamani/catalog/images"
	"github.com/cicekzamani/catalog/models"
	"github.com/cicekzamani/catalog/pipeline"
	"github.com/cicekzamani/catalog/scraper"
)

func main() {
	defaultCfg := config.DefaultConfig()
	outputDefault := defaultCfg.OutputDir
	if value, ok := config.EnvString("SCRAPER_OUTPUT_DIR"); ok {
		outputDefault = value
	}
	imagesDefault := defaultCfg.ImagesDir
	if value, ok := config.EnvString("SCRAPER_IMAGES_DIR"); ok {
		imagesDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("SCRAPER_METRICS_ADDR"); ok {
		metricsDefault = value
	}
	maxImagesDefault := defaultCfg.MaxImagesPerProduct
	if value, ok, err := config.EnvInt("SCRAPER_MAX_IMAGES"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid SCRAPER_MAX_IMAGES: %v\n", err)
		os.Exit(1)
	} else if ok {
		maxImagesDefault = value
	}

	categoriesFile := flag.String("categories", "", "YAML file with the category list (default: built-in list)")
	outputDir := flag.String("output-dir", outputDefault, "Directory for the JSON documents")
	imagesDir := flag.String("images-dir", imagesDefault, "Root directory for downloaded images")
	maxImages := flag.Int("max-images", maxImagesDefault, "Maximum images downloaded per product")
	timeoutSec := flag.Int("timeout", int(defaultCfg.Timeout.Seconds()), "Request timeout (seconds)")
	maxRetries := flag.Int("max-retries", defaultCfg.MaxRetries, "Maximum retry attempts per URL")
	retryBackoffMs := flag.Int("retry-backoff", int(defaultCfg.RetryBackoff.Milliseconds()), "Initial retry backoff (milliseconds)")
	retryBackoffMaxMs := flag.Int("retry-backoff-max", int(defaultCfg.RetryBackoffMax.Milliseconds()), "Maximum retry backoff (milliseconds)")
	delayMs := flag.Int("delay", int(defaultCfg.Delay.Milliseconds()), "Delay between requests (milliseconds)")
	randomDelayMs := flag.Int("random-delay", int(defaultCfg.RandomDelay.Milliseconds()), "Random jitter added to delay (milliseconds)")
	categoryDelayMs := flag.Int("category-delay", int(defaultCfg.CategoryDelay.Milliseconds()), "Pause between categories (milliseconds)")
	userAgent := flag.String("user-agent", defaultCfg.UserAgent, "User-Agent header")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.OutputDir = *outputDir
	cfg.ImagesDir = *imagesDir
	cfg.MaxImagesPerProduct = *maxImages
	cfg.Timeout = time.Duration(*timeoutSec) * time.Second
	cfg.MaxRetries = *maxRetries
	cfg.RetryBackoff = time.Duration(*retryBackoffMs) * time.Millisecond
	cfg.RetryBackoffMax = time.Duration(*retryBackoffMaxMs) * time.Millisecond
	cfg.Delay = time.Duration(*delayMs) * time.Millisecond
	cfg.RandomDelay = time.Duration(*randomDelayMs) * time.Millisecond
	cfg.CategoryDelay = time.Duration(*categoryDelayMs) * time.Millisecond
	cfg.UserAgent = *userAgent
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	if *categoriesFile != "" {
		categories, err := config.LoadCategories(*categoriesFile)
		if err != nil {
			slog.Error("loading categories", slog.Any("error", err))
			os.Exit(1)
		}
		cfg.Categories = categories
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting scrape",
		slog.Int("categories", len(cfg.Categories)),
		slog.String("output_dir", cfg.OutputDir),
		slog.String("images_dir", cfg.ImagesDir),
	)

	client, err := fetch.New(cfg)
	if err != nil {
		slog.Error("initialising fetch client", slog.Any("error", err))
		os.Exit(1)
	}
	store, err := images.NewStore(cfg.ImagesDir, client)
	if err != nil {
		slog.Error("initialising image store", slog.Any("error", err))
		os.Exit(1)
	}
	writer, err := pipeline.NewWriter(cfg.OutputDir)
	if err != nil {
		slog.Error("initialising writer", slog.Any("error", err))
		os.Exit(1)
	}

	s := scraper.New(cfg, client, store, writer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, finishing in-flight work")
	}()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && s.Metrics != nil {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	result, err := s.Run(ctx)
	if err != nil {
		slog.Error("scraping failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, cfg.OutputDir)
}

func printSummary(result *models.ScrapeResult, outputDir string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Scrape complete")
	fmt.Printf("  Categories:    %d (%d failed)\n", len(result.Categories), result.FailedCategories)
	fmt.Printf("  Products:      %d\n", result.TotalProducts)
	fmt.Printf("  Degraded:      %d\n", result.DegradedProducts)
	fmt.Printf("  Skipped cards: %d\n", result.SkippedProducts)
	fmt.Printf("  Images:        %d\n", result.DownloadedImages)
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime).Round(time.Second))
	fmt.Printf("  Output dir:    %s\n", outputDir)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
