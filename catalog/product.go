// Package catalog holds the document-store side of the system: the records
// the importer produces and the store they live in.
package catalog

import "time"

// Product is a catalog record. Identity is the freshly generated ID, not
// the scraped product code.
type Product struct {
	ID           string    `json:"id" bson:"id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Price        int       `json:"price" bson:"price"`
	Category     string    `json:"category" bson:"category"`
	Image        string    `json:"image" bson:"image"`
	Badge        string    `json:"badge" bson:"badge"`
	IsBestseller bool      `json:"is_bestseller" bson:"is_bestseller"`
	ProductCode  string    `json:"product_code,omitempty" bson:"product_code,omitempty"`
	SourceURL    string    `json:"source_url,omitempty" bson:"source_url,omitempty"`
	AllImages    []string  `json:"all_images,omitempty" bson:"all_images,omitempty"`
	Contents     []string  `json:"contents,omitempty" bson:"contents,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Category is a browsable catalog category.
type Category struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon" bson:"icon"`
}

// Banner is a storefront banner.
type Banner struct {
	ID    string `json:"id" bson:"id"`
	Image string `json:"image" bson:"image"`
	Title string `json:"title" bson:"title"`
	Link  string `json:"link" bson:"link"`
	Order int    `json:"order" bson:"order"`
}

// Filter narrows product queries. Zero values match everything.
type Filter struct {
	Category   string
	Bestseller *bool
}

// Matches reports whether p satisfies the filter.
func (f Filter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Bestseller != nil && p.IsBestseller != *f.Bestseller {
		return false
	}
	return true
}
