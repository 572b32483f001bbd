package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraper.
type Metrics struct {
	Registry         *prometheus.Registry
	CategoriesTotal  *prometheus.CounterVec
	ProductsTotal    *prometheus.CounterVec
	ImagesTotal      *prometheus.CounterVec
	FetchErrorsTotal *prometheus.CounterVec
	CategoryDuration prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	categories := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_categories_total",
			Help: "Categories processed by phase.",
		},
		[]string{"phase"},
	)
	products := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_products_total",
			Help: "Products processed by outcome.",
		},
		[]string{"outcome"},
	)
	images := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_images_total",
			Help: "Image downloads by result.",
		},
		[]string{"result"},
	)
	fetchErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_fetch_errors_total",
			Help: "Fetch failures by classification.",
		},
		[]string{"kind"},
	)
	categoryDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_category_duration_seconds",
			Help:    "Wall time spent per category.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	registry.MustRegister(categories, products, images, fetchErrors, categoryDuration)

	return &Metrics{
		Registry:         registry,
		CategoriesTotal:  categories,
		ProductsTotal:    products,
		ImagesTotal:      images,
		FetchErrorsTotal: fetchErrors,
		CategoryDuration: categoryDuration,
	}
}

// IncCategory increments the category counter for a phase.
func (m *Metrics) IncCategory(phase string) {
	if m == nil {
		return
	}
	m.CategoriesTotal.WithLabelValues(phase).Inc()
}

// AddProducts adds to the product counter for an outcome.
func (m *Metrics) AddProducts(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ProductsTotal.WithLabelValues(outcome).Add(float64(n))
}

// AddImages adds to the image counter for a result label.
func (m *Metrics) AddImages(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ImagesTotal.WithLabelValues(result).Add(float64(n))
}

// IncFetchError increments the fetch error counter for a kind.
func (m *Metrics) IncFetchError(kind string) {
	if m == nil {
		return
	}
	m.FetchErrorsTotal.WithLabelValues(kind).Inc()
}

// ObserveCategoryDuration records how long a category took.
func (m *Metrics) ObserveCategoryDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.CategoryDuration.Observe(d.Seconds())
}
