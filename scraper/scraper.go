// Package scraper drives the category-by-category harvest of the flower
// shop into per-category JSON documents and a local image tree.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cicekzamani/catalog/config"
	"github.com/cicekzamani/catalog/fetch"
	"github.com/cicekzamani/catalog/models"
)

// ImageAcquirer stores a product's remote images locally.
type ImageAcquirer interface {
	Acquire(ctx context.Context, category, title, productURL string, urls []string, max int) (folder string, local []string, failed int)
}

// Sink receives finished category documents and the final aggregate.
type Sink interface {
	WriteCategory(label string, products []models.ScrapedProduct) error
	WriteAggregate(products []models.ScrapedProduct) error
}

// Scraper iterates the configured categories sequentially. One fetch
// completes before the next begins; the fetch client's delay policy and the
// inter-category pause keep the request rate below the site's defenses.
type Scraper struct {
	cfg     *config.Config
	fetcher fetch.Fetcher
	images  ImageAcquirer
	sink    Sink
	rng     *rand.Rand

	Metrics *Metrics
}

// New builds a scraper from its collaborators.
func New(cfg *config.Config, fetcher fetch.Fetcher, images ImageAcquirer, sink Sink) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher,
		images:  images,
		sink:    sink,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		Metrics: NewMetrics(),
	}
}

// Run scrapes every category and writes one document per category plus the
// aggregate. A failed category is skipped and reported, never fatal; the
// only run-level errors are cancellation and output write failures.
func (s *Scraper) Run(ctx context.Context) (*models.ScrapeResult, error) {
	result := &models.ScrapeResult{StartTime: time.Now()}
	aggregate := []models.ScrapedProduct{}

	for i, cat := range s.cfg.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slog.Info("category started",
			slog.Int("index", i+1),
			slog.Int("total", len(s.cfg.Categories)),
			slog.String("category", cat.Label),
			slog.String("url", cat.URL),
		)

		report := s.scrapeCategory(ctx, cat)
		result.Categories = append(result.Categories, report)
		result.TotalProducts += len(report.Products)
		result.DegradedProducts += report.Degraded
		result.SkippedProducts += report.Skipped
		result.DownloadedImages += report.Images

		if report.Failed() {
			result.FailedCategories++
			slog.Error("category skipped",
				slog.String("category", cat.Label),
				slog.Any("error", report.Err),
			)
		} else {
			if err := s.sink.WriteCategory(cat.Label, report.Products); err != nil {
				return nil, fmt.Errorf("write category %s: %w", cat.Label, err)
			}
			aggregate = append(aggregate, report.Products...)
			slog.Info("category completed",
				slog.String("category", cat.Label),
				slog.Int("products", len(report.Products)),
				slog.Int("degraded", report.Degraded),
				slog.Int("images", report.Images),
			)
		}

		if i < len(s.cfg.Categories)-1 {
			s.pause(ctx, s.cfg.CategoryDelay, s.cfg.CategoryRandomDelay)
		}
	}

	if err := s.sink.WriteAggregate(aggregate); err != nil {
		return nil, fmt.Errorf("write aggregate: %w", err)
	}

	result.EndTime = time.Now()
	return result, nil
}

func (s *Scraper) scrapeCategory(ctx context.Context, cat models.CategorySpec) models.CategoryReport {
	report := models.CategoryReport{Label: cat.Label, URL: cat.URL}
	start := time.Now()
	s.Metrics.IncCategory("started")

	body, err := s.fetcher.Fetch(ctx, cat.URL)
	if err != nil {
		s.Metrics.IncFetchError(string(fetch.ErrKind(err)))
		s.Metrics.IncCategory("failed")
		report.Err = err
		return report
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.Metrics.IncCategory("failed")
		report.Err = fmt.Errorf("parse listing %s: %w", cat.URL, err)
		return report
	}

	base, _ := url.Parse(cat.URL)
	stubs, skipped := ExtractStubs(doc, base)
	report.Skipped = skipped
	s.Metrics.AddProducts(models.OutcomeSkipped, skipped)
	slog.Info("listing extracted",
		slog.String("category", cat.Label),
		slog.Int("products", len(stubs)),
		slog.Int("skipped", skipped),
	)

	report.Products = make([]models.ScrapedProduct, 0, len(stubs))
	for i, stub := range stubs {
		if ctx.Err() != nil {
			break
		}
		slog.Debug("product started",
			slog.Int("index", i+1),
			slog.Int("total", len(stubs)),
			slog.String("name", stub.Name),
		)

		product, outcome := s.scrapeProduct(ctx, cat.Label, stub)
		s.Metrics.AddProducts(outcome, 1)
		if outcome == models.OutcomeDegraded {
			report.Degraded++
		}

		folder, local, failed := s.images.Acquire(ctx, cat.Label, product.Name, product.URL, product.AllImages, s.cfg.MaxImagesPerProduct)
		s.Metrics.AddImages("ok", len(local))
		s.Metrics.AddImages("failed", failed)
		if len(local) > 0 {
			product.Folder = folder
			product.LocalImages = local
		}
		report.Images += len(local)

		report.Products = append(report.Products, product)
	}

	s.Metrics.IncCategory("completed")
	s.Metrics.ObserveCategoryDuration(time.Since(start))
	return report
}

// scrapeProduct fetches and parses one detail page. Any failure degrades the
// product to its listing-derived fields instead of dropping it.
func (s *Scraper) scrapeProduct(ctx context.Context, category string, stub models.ProductStub) (models.ScrapedProduct, string) {
	body, err := s.fetcher.Fetch(ctx, stub.DetailURL)
	if err != nil {
		s.Metrics.IncFetchError(string(fetch.ErrKind(err)))
		slog.Warn("detail fetch failed, keeping listing data",
			slog.String("url", stub.DetailURL),
			slog.Any("error", err),
		)
		return FallbackProduct(stub, category), models.OutcomeDegraded
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Warn("detail parse failed, keeping listing data",
			slog.String("url", stub.DetailURL),
			slog.Any("error", err),
		)
		return FallbackProduct(stub, category), models.OutcomeDegraded
	}

	return ExtractDetail(doc, stub, category), models.OutcomeOK
}

func (s *Scraper) pause(ctx context.Context, d, jitter time.Duration) {
	if jitter > 0 {
		d += time.Duration(s.rng.Int63n(int64(jitter)))
	}
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
