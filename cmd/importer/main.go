package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cicekzamani/catalog/catalog"
	"github.com/cicekzamani/catalog/config"
	"github.com/cicekzamani/catalog/models"
)

func main() {
	mongoDefault := "mongodb://localhost:27017"
	if value, ok := config.EnvString("CATALOG_MONGO_URL"); ok {
		mongoDefault = value
	}
	dbDefault := "cicekzamani"
	if value, ok := config.EnvString("CATALOG_DB_NAME"); ok {
		dbDefault = value
	}

	mongoURL := flag.String("mongo-url", mongoDefault, "MongoDB connection string")
	dbName := flag.String("db-name", dbDefault, "MongoDB database name")
	category := flag.String("category", "", "Fallback category label for records without one (default: derived from the file name)")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: importer [flags] batch.json [batch.json ...]")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, disconnect, err := catalog.NewMongoStore(connectCtx, *mongoURL, *dbName)
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

	importer := catalog.NewImporter(store)
	ctx := context.Background()

	exitCode := 0
	for _, file := range files {
		records, err := readBatch(file)
		if err != nil {
			logger.Error("reading batch", "file", file, "error", err)
			exitCode = 1
			continue
		}

		fallback := *category
		if fallback == "" {
			fallback = catalog.FallbackLabelFromFile(file)
		}

		summary := importer.Import(ctx, records, fallback)
		logger.Info("batch imported",
			"file", file,
			"imported", summary.Imported,
			"skipped", summary.Skipped)
		for _, detail := range summary.Errors {
			logger.Warn("record skipped", "name", detail.Name, "error", detail.Error)
		}
		if summary.Skipped > 0 {
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

func readBatch(path string) ([]models.ScrapedProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.ScrapedProduct
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}
