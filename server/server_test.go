package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicekzamani/catalog/catalog"
)

func newTestServer(t *testing.T) (*Server, *catalog.MemoryStore) {
	t.Helper()
	store := catalog.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, logger), store
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestRootEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ÇiçekZamanı API", body["message"])
}

func TestImportBatch(t *testing.T) {
	s, store := newTestServer(t)

	batch := `[
		{"product_code":"KP123456","name":"Beyaz Orkide","price":"799,00 TL","url":"https://www.ciceksepeti.vip/p","category":"Orkide","all_images":["https://cdn.ciceksepeti.vip/l/1.jpg"],"contents":["Seramik saksı"],"description":"Beyaz orkide"},
		{"product_code":"Bilinmiyor","name":"","price":"Fiyat bulunamadı","url":"https://www.ciceksepeti.vip/q"}
	]`
	rec := doRequest(t, s, http.MethodPost, "/api/import", batch)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary catalog.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, summary.Errors, 1)

	count, err := store.CountProducts(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	products, err := store.Products(context.Background(), catalog.Filter{Category: "orkide"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Beyaz Orkide", products[0].Title)
	assert.Equal(t, 799, products[0].Price)
}

func TestImportRejectsMalformedBody(t *testing.T) {
	s, store := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/import", `[{"name": "trunc`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	count, err := store.CountProducts(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Zero(t, count, "a rejected batch must insert nothing")
}

func TestImportFallbackCategoryParam(t *testing.T) {
	s, store := newTestServer(t)

	batch := `[{"name":"Kokina Sevimli","price":"349,00 TL","url":"https://www.ciceksepeti.vip/k"}]`
	rec := doRequest(t, s, http.MethodPost, "/api/import?category=Kokina", batch)
	require.Equal(t, http.StatusOK, rec.Code)

	products, err := store.Products(context.Background(), catalog.Filter{Category: "kokina"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestListProductsFilters(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	seed := []catalog.Product{
		{ID: "p1", Title: "Beyaz Orkide", Category: "orkide", IsBestseller: true},
		{ID: "p2", Title: "Mor Orkide", Category: "orkide"},
		{ID: "p3", Title: "Gül Buketi", Category: "gul"},
	}
	for _, p := range seed {
		_, err := store.InsertProduct(ctx, p)
		require.NoError(t, err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/products?category=orkide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)

	rec = doRequest(t, s, http.MethodGet, "/api/products?bestseller=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)

	rec = doRequest(t, s, http.MethodGet, "/api/products?limit=2&skip=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[0].ID)
}

func TestListProductsValidatesParams(t *testing.T) {
	s, _ := newTestServer(t)

	for _, target := range []string{
		"/api/products?limit=0",
		"/api/products?limit=101",
		"/api/products?limit=abc",
		"/api/products?skip=-1",
		"/api/products?bestseller=maybe",
	} {
		rec := doRequest(t, s, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestDeleteProductsByCategory(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()
	for _, p := range []catalog.Product{
		{ID: "p1", Category: "orkide"},
		{ID: "p2", Category: "orkide"},
		{ID: "p3", Category: "gul"},
	} {
		_, err := store.InsertProduct(ctx, p)
		require.NoError(t, err)
	}

	rec := doRequest(t, s, http.MethodDelete, "/api/products?category=orkide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body["deleted"])

	count, err := store.CountProducts(ctx, catalog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStats(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()
	for _, p := range []catalog.Product{
		{ID: "p1", Category: "orkide"},
		{ID: "p2", Category: "orkide"},
		{ID: "p3", Category: "gul"},
	} {
		_, err := store.InsertProduct(ctx, p)
		require.NoError(t, err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		TotalProducts int64            `json:"total_products"`
		ByCategory    map[string]int64 `json:"by_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.TotalProducts)
	assert.Equal(t, int64(2), body.ByCategory["orkide"])
}

func TestGetProductNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/products/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	s, store := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/products",
		`{"id":"p1","title":"Beyaz Orkide","price":799,"category":"orkide"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	p, err := store.Product(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Beyaz Orkide", p.Title)

	rec = doRequest(t, s, http.MethodPost, "/api/products", `{"title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryBySlug(t *testing.T) {
	s, store := newTestServer(t)
	require.NoError(t, store.InsertCategories(context.Background(), []catalog.Category{
		{ID: "c1", Name: "Orkide", Slug: "orkide"},
	}))

	rec := doRequest(t, s, http.MethodGet, "/api/categories/orkide", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/categories/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchValidatesQueryLength(t *testing.T) {
	s, store := newTestServer(t)
	_, err := store.InsertProduct(context.Background(), catalog.Product{ID: "p1", Title: "Beyaz Orkide"})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/api/search?q=o", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/search?q=orkide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
}

func TestSeedOnlyFillsEmptyCatalog(t *testing.T) {
	s, store := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary catalog.SeedSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Positive(t, summary.Products)

	before, err := store.CountProducts(context.Background(), catalog.Filter{})
	require.NoError(t, err)

	rec = doRequest(t, s, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	after, err := store.CountProducts(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, before, after, "re-seeding a filled catalog must be a no-op")
}

func TestBanners(t *testing.T) {
	s, store := newTestServer(t)
	require.NoError(t, store.InsertBanners(context.Background(), []catalog.Banner{
		{ID: "b2", Order: 2},
		{ID: "b1", Order: 1},
	}))

	rec := doRequest(t, s, http.MethodGet, "/api/banners", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var banners []catalog.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banners))
	require.Len(t, banners, 2)
	assert.Equal(t, "b1", banners[0].ID)
}
