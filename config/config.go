package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/cicekzamani/catalog/models"
)

// Config holds scraper configuration. It is assembled once at startup and
// treated as immutable afterwards.
type Config struct {
	Categories []models.CategorySpec

	UserAgent       string
	Timeout         time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
	RetryBackoffMax time.Duration

	// Delay policy between consecutive requests and between categories.
	// The target site penalizes rapid access, so these stay generous.
	Delay               time.Duration
	RandomDelay         time.Duration
	CategoryDelay       time.Duration
	CategoryRandomDelay time.Duration

	OutputDir           string
	ImagesDir           string
	MaxImagesPerProduct int

	MetricsAddr string
	Verbose     bool
}

// DefaultConfig returns conservative defaults for the flower-shop target.
func DefaultConfig() *Config {
	return &Config{
		Categories:          DefaultCategories(),
		UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Timeout:             30 * time.Second,
		MaxRetries:          2,
		RetryBackoff:        500 * time.Millisecond,
		RetryBackoffMax:     5 * time.Second,
		Delay:               time.Second,
		RandomDelay:         time.Second,
		CategoryDelay:       3 * time.Second,
		CategoryRandomDelay: 2 * time.Second,
		OutputDir:           "output",
		ImagesDir:           "images",
		MaxImagesPerProduct: 5,
		MetricsAddr:         "",
		Verbose:             false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("category list cannot be empty")
	}
	for _, cat := range c.Categories {
		if cat.Label == "" {
			return fmt.Errorf("category %q is missing a label", cat.URL)
		}
		parsed, err := url.Parse(cat.URL)
		if err != nil {
			return fmt.Errorf("category %s: invalid URL: %w", cat.Label, err)
		}
		if parsed.Host == "" {
			return fmt.Errorf("category %s: URL must include a host", cat.Label)
		}
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.RetryBackoff < 0 {
		return fmt.Errorf("retry backoff cannot be negative")
	}
	if c.RetryBackoffMax < 0 {
		return fmt.Errorf("retry backoff max cannot be negative")
	}
	if c.RetryBackoffMax > 0 && c.RetryBackoff > c.RetryBackoffMax {
		return fmt.Errorf("retry backoff (%s) cannot exceed retry backoff max (%s)", c.RetryBackoff, c.RetryBackoffMax)
	}
	if c.Delay < 0 || c.RandomDelay < 0 {
		return fmt.Errorf("request delay cannot be negative")
	}
	if c.CategoryDelay < 0 || c.CategoryRandomDelay < 0 {
		return fmt.Errorf("category delay cannot be negative")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("images directory cannot be empty")
	}
	if c.MaxImagesPerProduct <= 0 {
		return fmt.Errorf("max images per product must be positive")
	}
	return nil
}
