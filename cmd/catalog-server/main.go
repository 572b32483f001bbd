package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cicekzamani/catalog/catalog"
	"github.com/cicekzamani/catalog/config"
	"github.com/cicekzamani/catalog/server"
)

func main() {
	addrDefault := ":8001"
	if value, ok := config.EnvString("CATALOG_ADDR"); ok {
		addrDefault = value
	}
	mongoDefault := ""
	if value, ok := config.EnvString("CATALOG_MONGO_URL"); ok {
		mongoDefault = value
	}
	dbDefault := "cicekzamani"
	if value, ok := config.EnvString("CATALOG_DB_NAME"); ok {
		dbDefault = value
	}

	addr := flag.String("addr", addrDefault, "HTTP listen address")
	mongoURL := flag.String("mongo-url", mongoDefault, "MongoDB connection string (empty: in-memory store)")
	dbName := flag.String("db-name", dbDefault, "MongoDB database name")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var store catalog.Store
	if *mongoURL != "" {
		connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, disconnect, err := catalog.NewMongoStore(connectCtx, *mongoURL, *dbName)
		cancel()
		if err != nil {
			logger.Error("connecting to mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := disconnect(ctx); err != nil {
				logger.Error("mongodb disconnect failed", "error", err)
			}
		}()
		store = mongoStore
		logger.Info("using mongodb store", "db", *dbName)
	} else {
		store = catalog.NewMemoryStore()
		logger.Info("using in-memory store")
	}

	srv := server.New(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("catalog server listening", "addr", *addr)
		if err := srv.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}
