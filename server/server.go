package server

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cicekzamani/catalog/catalog"
)

// Server exposes the catalog over HTTP.
type Server struct {
	echo     *echo.Echo
	store    catalog.Store
	importer *catalog.Importer
	log      *slog.Logger
}

// New builds the HTTP server around the given store.
func New(store catalog.Store, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s := &Server{
		echo:     e,
		store:    store,
		importer: catalog.NewImporter(store),
		log:      log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.GET("/", s.root)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.POST("/products", s.createProduct)
	api.DELETE("/products", s.deleteProducts)
	api.GET("/stats", s.stats)
	api.GET("/categories", s.listCategories)
	api.GET("/categories/:slug", s.getCategory)
	api.GET("/banners", s.listBanners)
	api.GET("/search", s.search)
	api.POST("/seed", s.seed)
	api.POST("/import", s.importProducts)
}

// Start runs the server until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router, mainly for tests and for callers
// that manage the listener themselves.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
