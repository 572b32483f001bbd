package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"path"
	"path/filepath"
	"time"

	"github.com/cicekzamani/catalog/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// badges are display labels assigned at random to imported products.
var badges = []string{"Aynı Gün Teslimat", "Premium", "Fırsat"}

const (
	bestsellerRate  = 0.15
	maxErrorDetails = 10
)

// ImportError describes one skipped record.
type ImportError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportSummary reports the outcome of one batch. Errors holds at most the
// first ten details; the counts always cover the whole batch.
type ImportSummary struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// Importer turns scraped product batches into catalog records. Each record
// is inserted as a new document: the catalog has no dedup key, so importing
// the same batch twice duplicates its records.
type Importer struct {
	store Store
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

// NewImporter builds an importer over the given store.
func NewImporter(store Store) *Importer {
	return &Importer{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		newID: func() string { return primitive.NewObjectID().Hex() },
	}
}

// Import processes one batch. Per-record failures are recorded and skipped;
// processing always continues with the next record. Records without a
// category take fallbackLabel.
func (im *Importer) Import(ctx context.Context, records []models.ScrapedProduct, fallbackLabel string) ImportSummary {
	summary := ImportSummary{Errors: []ImportError{}}

	for _, rec := range records {
		if err := im.importOne(ctx, rec, fallbackLabel); err != nil {
			summary.Skipped++
			if len(summary.Errors) < maxErrorDetails {
				summary.Errors = append(summary.Errors, ImportError{Name: rec.Name, Error: err.Error()})
			}
			continue
		}
		summary.Imported++
	}
	return summary
}

func (im *Importer) importOne(ctx context.Context, rec models.ScrapedProduct, fallbackLabel string) error {
	if rec.Name == "" {
		return fmt.Errorf("record has no name")
	}

	label := rec.Category
	if label == "" {
		label = fallbackLabel
	}

	p := Product{
		ID:           im.newID(),
		Title:        rec.Name,
		Description:  rec.Description,
		Price:        ParsePrice(rec.Price),
		Category:     SlugForLabel(label),
		Image:        selectImage(rec),
		Badge:        badges[im.rng.Intn(len(badges))],
		IsBestseller: im.rng.Float64() < bestsellerRate,
		ProductCode:  rec.ProductCode,
		SourceURL:    rec.URL,
		AllImages:    rec.AllImages,
		Contents:     rec.Contents,
		CreatedAt:    im.now().UTC(),
	}

	if _, err := im.store.InsertProduct(ctx, p); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// selectImage prefers the first full-resolution remote URL, then a locally
// rooted path from the first downloaded image.
func selectImage(rec models.ScrapedProduct) string {
	if len(rec.AllImages) > 0 {
		return rec.AllImages[0]
	}
	if len(rec.LocalImages) > 0 {
		return path.Join("/images", filepath.ToSlash(rec.LocalImages[0]))
	}
	return ""
}
