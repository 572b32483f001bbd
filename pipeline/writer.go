// Package pipeline writes scraped products to their JSON documents.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cicekzamani/catalog/models"
)

// AggregateFile is the document holding every scraped product of a run.
const AggregateFile = "tum_urunler.json"

// CategoryFile returns the document name for a category label.
func CategoryFile(label string) string {
	return strings.ToLower(label) + "_urunler.json"
}

// Writer persists category documents and the run aggregate under one
// directory. Documents are whole-file batches: each write replaces the file
// atomically via a temp file and rename.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteCategory writes one category's full product list.
func (w *Writer) WriteCategory(label string, products []models.ScrapedProduct) error {
	return w.writeDoc(filepath.Join(w.dir, CategoryFile(label)), products)
}

// WriteAggregate writes the run-wide product list.
func (w *Writer) WriteAggregate(products []models.ScrapedProduct) error {
	return w.writeDoc(filepath.Join(w.dir, AggregateFile), products)
}

func (w *Writer) writeDoc(path string, products []models.ScrapedProduct) error {
	if products == nil {
		products = []models.ScrapedProduct{}
	}

	b, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	b = append(b, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
