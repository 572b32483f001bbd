package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cicekzamani/catalog/catalog"
	"github.com/cicekzamani/catalog/models"
)

const (
	defaultLimit = 50
	maxLimit     = 100
	minQueryLen  = 2
)

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "ÇiçekZamanı API"})
}

func (s *Server) listProducts(c echo.Context) error {
	f := catalog.Filter{Category: c.QueryParam("category")}

	if raw := c.QueryParam("bestseller"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bestseller must be a boolean")
		}
		f.Bestseller = &v
	}

	limit, err := intParam(c, "limit", defaultLimit)
	if err != nil {
		return err
	}
	if limit < 1 || limit > maxLimit {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
	}
	skip, err := intParam(c, "skip", 0)
	if err != nil {
		return err
	}
	if skip < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "skip must not be negative")
	}

	products, err := s.store.Products(c.Request().Context(), f, limit, skip)
	if err != nil {
		return s.internal(c, "list products", err)
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c echo.Context) error {
	p, err := s.store.Product(c.Request().Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return s.internal(c, "get product", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var p catalog.Product
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product payload")
	}
	if strings.TrimSpace(p.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	id, err := s.store.InsertProduct(c.Request().Context(), p)
	if err != nil {
		return s.internal(c, "create product", err)
	}
	p.ID = id
	return c.JSON(http.StatusCreated, p)
}

// deleteProducts clears products matching the filter, typically one category
// ahead of a fresh import.
func (s *Server) deleteProducts(c echo.Context) error {
	f := catalog.Filter{Category: c.QueryParam("category")}

	deleted, err := s.store.DeleteProducts(c.Request().Context(), f)
	if err != nil {
		return s.internal(c, "delete products", err)
	}
	s.log.Info("products deleted", "category", f.Category, "deleted", deleted)
	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

func (s *Server) stats(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := s.store.CountProducts(ctx, catalog.Filter{})
	if err != nil {
		return s.internal(c, "count products", err)
	}
	byCategory, err := s.store.GroupCountProducts(ctx, "category")
	if err != nil {
		return s.internal(c, "group products", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_products": total,
		"by_category":    byCategory,
	})
}

func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.store.Categories(c.Request().Context())
	if err != nil {
		return s.internal(c, "list categories", err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c echo.Context) error {
	cat, err := s.store.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, catalog.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return s.internal(c, "get category", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) listBanners(c echo.Context) error {
	banners, err := s.store.Banners(c.Request().Context())
	if err != nil {
		return s.internal(c, "list banners", err)
	}
	return c.JSON(http.StatusOK, banners)
}

func (s *Server) search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if len([]rune(query)) < minQueryLen {
		return echo.NewHTTPError(http.StatusBadRequest, "query must be at least 2 characters")
	}

	products, err := s.store.SearchProducts(c.Request().Context(), query, defaultLimit)
	if err != nil {
		return s.internal(c, "search products", err)
	}
	return c.JSON(http.StatusOK, products)
}

// seed populates an empty catalog. A catalog with any products refuses the
// request so a restart cannot duplicate the storefront data.
func (s *Server) seed(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := s.store.CountProducts(ctx, catalog.Filter{})
	if err != nil {
		return s.internal(c, "count products", err)
	}
	if count > 0 {
		return c.JSON(http.StatusOK, map[string]string{"message": "Veritabanı zaten dolu"})
	}

	summary, err := catalog.Seed(ctx, s.store)
	if err != nil {
		return s.internal(c, "seed", err)
	}
	return c.JSON(http.StatusOK, summary)
}

// importProducts ingests one scraped batch. A malformed body rejects the
// whole batch before anything is inserted.
func (s *Server) importProducts(c echo.Context) error {
	var records []models.ScrapedProduct
	if err := c.Bind(&records); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid import payload")
	}

	fallback := c.QueryParam("category")
	summary := s.importer.Import(c.Request().Context(), records, fallback)

	s.log.Info("import finished",
		"imported", summary.Imported,
		"skipped", summary.Skipped)
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) internal(c echo.Context, op string, err error) error {
	s.log.Error(op+" failed", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
