package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeedSummary reports what an initial seed inserted.
type SeedSummary struct {
	Categories int `json:"categories_count"`
	Banners    int `json:"banners_count"`
	Products   int `json:"products_count"`
}

// Seed fills an empty store with the storefront's initial categories,
// banners and a starter product set. The caller is expected to check the
// store is empty first; Seed itself inserts unconditionally.
func Seed(ctx context.Context, store Store) (SeedSummary, error) {
	newID := func() string { return primitive.NewObjectID().Hex() }
	now := time.Now().UTC()

	categories := []Category{
		{ID: newID(), Name: "Orkide", Slug: "orkide", Description: "Şık, zarif ve kalıcı hediye", Icon: "🌸"},
		{ID: newID(), Name: "Gül", Slug: "gul", Description: "Aşkın en klasik hali", Icon: "🌹"},
		{ID: newID(), Name: "Papatya / Gerbera", Slug: "papatya-gerbera", Description: "Neşeli ve canlı çiçekler", Icon: "🌼"},
		{ID: newID(), Name: "Saksı Çiçekleri", Slug: "saksi-cicekleri", Description: "Kalıcı saksı bitkileri", Icon: "🪴"},
		{ID: newID(), Name: "Ayçiçeği", Slug: "aycicegi", Description: "Güneş gibi parlak", Icon: "🌻"},
		{ID: newID(), Name: "Hüsnüyusuf", Slug: "husnuyusuf", Description: "Romantik ve zarif", Icon: "💜"},
		{ID: newID(), Name: "Geçmiş Olsun", Slug: "gecmis-olsun", Description: "Sevdiklerinize şifa dileyin", Icon: "💐"},
		{ID: newID(), Name: "Yeni İş / Terfi", Slug: "yeni-is-terfi", Description: "Başarıları kutlayın", Icon: "🎊"},
		{ID: newID(), Name: "Doğum / Yeni Bebek", Slug: "dogum-yeni-bebek", Description: "Yeni hayatı kutlayın", Icon: "👶"},
		{ID: newID(), Name: "Tasarım Çiçekler", Slug: "tasarim", Description: "Özel aranjmanlar ve butik işler", Icon: "🎨"},
		{ID: newID(), Name: "Çiçek Buketleri", Slug: "cicek-buketleri", Description: "Her ocasyon için buketler", Icon: "💐"},
		{ID: newID(), Name: "Antoryum", Slug: "antoryum", Description: "Egzotik ve şık", Icon: "❤️"},
		{ID: newID(), Name: "Kokina", Slug: "kokina", Description: "Yeni yılın gözdesi", Icon: "🎄"},
	}
	if err := store.InsertCategories(ctx, categories); err != nil {
		return SeedSummary{}, fmt.Errorf("seed categories: %w", err)
	}

	banners := []Banner{
		{ID: newID(), Image: "https://images.unsplash.com/photo-1487530811176-3780de880c2d?w=1200&h=400&fit=crop", Title: "Yaz Koleksiyonu", Link: "/kategori/tasarim", Order: 1},
		{ID: newID(), Image: "https://images.unsplash.com/photo-1561181286-d3fee7d55364?w=1200&h=400&fit=crop", Title: "Güller Festivali", Link: "/kategori/gul", Order: 2},
		{ID: newID(), Image: "https://images.unsplash.com/photo-1508610048659-a06b669e3321?w=1200&h=400&fit=crop", Title: "Orkide Şıklığı", Link: "/kategori/orkide", Order: 3},
	}
	if err := store.InsertBanners(ctx, banners); err != nil {
		return SeedSummary{}, fmt.Errorf("seed banners: %w", err)
	}

	products := []Product{
		{ID: newID(), Title: "Kırmızı Gül Buketi", Description: "11 adet kırmızı gülden oluşan romantik buket", Price: 599, Category: "gul", Image: "https://images.unsplash.com/photo-1518621736915-f3b1c41bfd00?w=400&h=400&fit=crop", IsBestseller: true, Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Pembe Gül Aranjmanı", Description: "21 adet pembe gül özel vazo içinde", Price: 899, Category: "gul", Image: "https://images.unsplash.com/photo-1455659817273-f96807779a8a?w=400&h=400&fit=crop", IsBestseller: true, Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Lüks Gül Kutusu", Description: "50 adet premium gül özel kutuda", Price: 2499, Category: "gul", Image: "https://images.unsplash.com/photo-1548586196-aa5803b77379?w=400&h=400&fit=crop", Badge: "Premium", CreatedAt: now},
		{ID: newID(), Title: "Beyaz Orkide", Description: "Tek dallı beyaz orkide seramik saksıda", Price: 799, Category: "orkide", Image: "https://images.unsplash.com/photo-1567748157439-651aca2ff064?w=400&h=400&fit=crop", IsBestseller: true, Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Mor Orkide", Description: "Çift dallı mor orkide premium saksıda", Price: 1299, Category: "orkide", Image: "https://images.unsplash.com/photo-1610397648930-477b8c7f0943?w=400&h=400&fit=crop", IsBestseller: true, Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Butik Aranjman", Description: "Mevsim çiçeklerinden özel tasarım", Price: 699, Category: "tasarim", Image: "https://images.unsplash.com/photo-1563241527-3004b7be0ffd?w=400&h=400&fit=crop", IsBestseller: true, Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Pastel Rüya", Description: "Pastel tonlarda özel aranjman", Price: 899, Category: "tasarim", Image: "https://images.unsplash.com/photo-1520763185298-1b434c919102?w=400&h=400&fit=crop", Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Papatya Buketi", Description: "Taze papatyalardan neşeli buket", Price: 399, Category: "papatya-gerbera", Image: "https://images.unsplash.com/photo-1490750967868-88aa4486c946?w=400&h=400&fit=crop", Badge: "Aynı Gün Teslimat", CreatedAt: now},
		{ID: newID(), Title: "Gerbera Aranjmanı", Description: "Renkli gerberalardan canlı aranjman", Price: 549, Category: "papatya-gerbera", Image: "https://images.unsplash.com/photo-1518882605630-8eb573696572?w=400&h=400&fit=crop", Badge: "Aynı Gün Teslimat", CreatedAt: now},
	}
	for _, p := range products {
		if _, err := store.InsertProduct(ctx, p); err != nil {
			return SeedSummary{}, fmt.Errorf("seed products: %w", err)
		}
	}

	return SeedSummary{
		Categories: len(categories),
		Banners:    len(banners),
		Products:   len(products),
	}, nil
}
