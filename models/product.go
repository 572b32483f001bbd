// Package models defines data structures shared by the scraper and importer.
package models

import "time"

// CategorySpec pairs a category listing URL with the scraper-side label used
// for folder names and output files, and the catalog slug it maps to.
type CategorySpec struct {
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label" yaml:"label"`
}

// ProductStub is the listing-page view of a product. It only lives long
// enough to drive the detail fetch; the detail page supersedes it.
type ProductStub struct {
	Name         string
	DetailURL    string
	PriceText    string
	ThumbnailURL string
}

// ScrapedProduct is the durable output of one scraped product. The JSON tags
// are the import batch shape consumed by the catalog importer.
type ScrapedProduct struct {
	ProductCode string   `json:"product_code"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	URL         string   `json:"url"`
	Category    string   `json:"category,omitempty"`
	Folder      string   `json:"folder"`
	LocalImages []string `json:"local_images"`
	AllImages   []string `json:"all_images"`
	Contents    []string `json:"contents"`
	Description string   `json:"description"`
}

// Product outcome labels reported by the orchestrator.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeSkipped  = "skipped"
)

// CategoryReport summarises one category's run.
type CategoryReport struct {
	Label    string
	URL      string
	Products []ScrapedProduct
	Degraded int
	Skipped  int
	Images   int
	Err      error
}

// Failed reports whether the category listing itself could not be fetched.
func (r *CategoryReport) Failed() bool {
	return r.Err != nil
}

// ScrapeResult holds the overall result of a scraping run.
type ScrapeResult struct {
	StartTime        time.Time
	EndTime          time.Time
	Categories       []CategoryReport
	TotalProducts    int
	DegradedProducts int
	SkippedProducts  int
	FailedCategories int
	DownloadedImages int
}
