// Package images maintains the on-disk image tree for scraped products.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Downloader fetches a binary resource to a local file, sending the product
// page as Referer.
type Downloader interface {
	Download(ctx context.Context, url, referer, dest string) error
}

// Store owns the image tree rooted at root. One folder per product under a
// per-category directory. A bounded cache of already-downloaded URLs keeps a
// URL from being fetched twice within a run even when products share assets.
type Store struct {
	root   string
	client Downloader
	cache  *lru.Cache[string, string]
}

// NewStore creates the root directory and the URL cache.
func NewStore(root string, client Downloader) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create image root %q: %w", root, err)
	}
	cache, err := lru.New[string, string](4096)
	if err != nil {
		return nil, err
	}
	return &Store{root: root, client: client, cache: cache}, nil
}

// Acquire downloads up to max images for one product into a fresh unique
// folder named after the sanitized title. It returns the folder relative to
// the store root, the relative paths of the images in download order, and
// the number of failed downloads. Failures are logged and skipped; they
// never produce a placeholder entry. An empty URL set creates no folder.
func (s *Store) Acquire(ctx context.Context, category, title, productURL string, urls []string, max int) (string, []string, int) {
	if len(urls) == 0 {
		return "", nil, 0
	}
	if max > 0 && len(urls) > max {
		urls = urls[:max]
	}

	catDir := filepath.Join(s.root, category)
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		slog.Error("create category folder failed", slog.String("category", category), slog.Any("error", err))
		return "", nil, len(urls)
	}

	folderPath, folderName, err := UniqueFolder(catDir, SafeName(title))
	if err != nil {
		slog.Error("create product folder failed", slog.String("title", title), slog.Any("error", err))
		return "", nil, len(urls)
	}

	var local []string
	failed := 0
	for i, u := range urls {
		if rel, ok := s.cache.Get(u); ok {
			local = append(local, rel)
			continue
		}

		filename := fmt.Sprintf("%d.jpg", i+1)
		dest := filepath.Join(folderPath, filename)
		if err := s.client.Download(ctx, u, productURL, dest); err != nil {
			failed++
			slog.Warn("image download failed",
				slog.String("url", u),
				slog.String("product", title),
				slog.Any("error", err),
			)
			continue
		}

		rel := filepath.Join(category, folderName, filename)
		local = append(local, rel)
		s.cache.Add(u, rel)
	}

	return filepath.Join(category, folderName), local, failed
}
