package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local runs without a
// database. Insertion order is preserved.
type MemoryStore struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	banners    []Banner
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertProduct(_ context.Context, p Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return p.ID, nil
}

func (s *MemoryStore) Products(_ context.Context, f Filter, limit, skip int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Product{}
	seen := 0
	for _, p := range s.products {
		if !f.Matches(p) {
			continue
		}
		seen++
		if seen <= skip {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Product(_ context.Context, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *MemoryStore) CountProducts(_ context.Context, f Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.products {
		if f.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeleteProducts(_ context.Context, f Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.products[:0]
	var removed int64
	for _, p := range s.products {
		if f.Matches(p) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.products = kept
	return removed, nil
}

func (s *MemoryStore) GroupCountProducts(_ context.Context, field string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, p := range s.products {
		switch field {
		case "category":
			counts[p.Category]++
		case "badge":
			counts[p.Badge]++
		default:
			counts[""]++
		}
	}
	return counts, nil
}

func (s *MemoryStore) SearchProducts(_ context.Context, query string, limit int) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	out := []Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) Categories(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *MemoryStore) CategoryBySlug(_ context.Context, slug string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (s *MemoryStore) InsertCategories(_ context.Context, categories []Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, categories...)
	return nil
}

func (s *MemoryStore) Banners(_ context.Context) ([]Banner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Banner, len(s.banners))
	copy(out, s.banners)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) InsertBanners(_ context.Context, banners []Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banners = append(s.banners, banners...)
	return nil
}
