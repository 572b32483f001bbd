package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database with products,
// categories and banners collections.
type MongoStore struct {
	products   *mongo.Collection
	categories *mongo.Collection
	banners    *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns the store plus a disconnect
// function for shutdown.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	store := &MongoStore{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		banners:    db.Collection("banners"),
	}
	return store, client.Disconnect, nil
}

func mongoQuery(f Filter) bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.Bestseller != nil {
		q["is_bestseller"] = *f.Bestseller
	}
	return q
}

func (s *MongoStore) InsertProduct(ctx context.Context, p Product) (string, error) {
	if _, err := s.products.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}
	return p.ID, nil
}

func (s *MongoStore) Products(ctx context.Context, f Filter, limit, skip int) ([]Product, error) {
	opts := options.Find().SetSkip(int64(skip))
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.products.Find(ctx, mongoQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	out := []Product{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Product(ctx context.Context, id string) (Product, error) {
	var p Product
	err := s.products.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return p, nil
}

func (s *MongoStore) CountProducts(ctx context.Context, f Filter) (int64, error) {
	n, err := s.products.CountDocuments(ctx, mongoQuery(f))
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (s *MongoStore) DeleteProducts(ctx context.Context, f Filter) (int64, error) {
	res, err := s.products.DeleteMany(ctx, mongoQuery(f))
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) GroupCountProducts(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group products by %s: %w", field, err)
	}

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode group counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

func (s *MongoStore) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	q := bson.M{"$or": []bson.M{
		{"title": bson.M{"$regex": query, "$options": "i"}},
		{"description": bson.M{"$regex": query, "$options": "i"}},
	}}
	opts := options.Find()
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.products.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	out := []Product{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Categories(ctx context.Context) ([]Category, error) {
	cursor, err := s.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	out := []Category{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}

func (s *MongoStore) CategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var c Category
	err := s.categories.FindOne(ctx, bson.M{"slug": slug}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("find category %s: %w", slug, err)
	}
	return c, nil
}

func (s *MongoStore) InsertCategories(ctx context.Context, categories []Category) error {
	docs := make([]interface{}, len(categories))
	for i, c := range categories {
		docs[i] = c
	}
	if _, err := s.categories.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

func (s *MongoStore) Banners(ctx context.Context) ([]Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := s.banners.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find banners: %w", err)
	}
	out := []Banner{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode banners: %w", err)
	}
	return out, nil
}

func (s *MongoStore) InsertBanners(ctx context.Context, banners []Banner) error {
	docs := make([]interface{}, len(banners))
	for i, b := range banners {
		docs[i] = b
	}
	if _, err := s.banners.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert banners: %w", err)
	}
	return nil
}
