package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned for lookups of records that do not exist.
var ErrNotFound = errors.New("catalog: not found")

// Store is the record-oriented interface over the document store.
type Store interface {
	InsertProduct(ctx context.Context, p Product) (string, error)
	Products(ctx context.Context, f Filter, limit, skip int) ([]Product, error)
	Product(ctx context.Context, id string) (Product, error)
	CountProducts(ctx context.Context, f Filter) (int64, error)
	DeleteProducts(ctx context.Context, f Filter) (int64, error)
	GroupCountProducts(ctx context.Context, field string) (map[string]int64, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)

	Categories(ctx context.Context) ([]Category, error)
	CategoryBySlug(ctx context.Context, slug string) (Category, error)
	InsertCategories(ctx context.Context, categories []Category) error

	Banners(ctx context.Context) ([]Banner, error)
	InsertBanners(ctx context.Context, banners []Banner) error
}
