package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type categoryDocument struct {
	Name string `bson:"name"`
}

// CategoryStore implements catalog.CategoryRepository on the category collection.
type CategoryStore struct {
	coll *mongo.Collection
}

// Categories returns the store for the category collection.
func (c *Client) Categories() *CategoryStore {
	return &CategoryStore{coll: c.db.Collection(CategoryCollection)}
}

// ListNames returns category names in ascending order.
func (s *CategoryStore) ListNames(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 0}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list categories: decode: %w", err)
	}
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		names = append(names, doc.Name)
	}
	return names, nil
}

// SeedIfEmpty upserts names when the collection holds no document. The
// unique index on name turns a concurrent seeder's writes into no-ops.
func (s *CategoryStore) SeedIfEmpty(ctx context.Context, names []string) (bool, error) {
	if len(names) == 0 {
		return false, nil
	}
	count, err := s.coll.CountDocuments(ctx, bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	res, err := s.coll.BulkWrite(ctx, seedModels(names), options.BulkWrite().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("seed categories: %w", err)
	}
	return res != nil && res.UpsertedCount > 0, nil
}

// seedModels builds one insert-only upsert per name.
func seedModels(names []string) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(names))
	for _, name := range names {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "name", Value: name}}).
			SetUpdate(bson.D{{Key: "$setOnInsert", Value: bson.D{{Key: "name", Value: name}}}}).
			SetUpsert(true))
	}
	return models
}
