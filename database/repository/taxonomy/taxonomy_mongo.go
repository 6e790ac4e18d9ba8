package taxonomyRepo

import (
	"context"
	"fmt"
	"time"

	"lexmarket/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaxonomyRepo implements TaxonomyRepository using MongoDB.
type MongoTaxonomyRepo struct {
	coll *mongo.Collection
}

// NewMongoTaxonomyRepo creates a new instance of TaxonomyRepository using MongoDB.
func NewMongoTaxonomyRepo(db *mongo.Database) TaxonomyRepository {
	repo := &MongoTaxonomyRepo{coll: db.Collection("taxonomy")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create taxonomy indexes: %v\n", err)
	}
	return repo
}

func (r *MongoTaxonomyRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "name", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoTaxonomyRepo) MissingIDs(ctx context.Context, kind models.TaxonomyKind, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.M{"kind": kind, "id": bson.M{"$in": ids}}
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s ids: %w", kind, err)
	}
	defer cursor.Close(ctx)

	found := make(map[string]bool, len(ids))
	for cursor.Next(ctx) {
		var item models.TaxonomyItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		found[item.ID] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *MongoTaxonomyRepo) List(ctx context.Context, kind models.TaxonomyKind) ([]models.TaxonomyItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"kind": kind}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var items []models.TaxonomyItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}
	return items, nil
}

func (r *MongoTaxonomyRepo) UpsertMany(ctx context.Context, items []models.TaxonomyItem) error {
	if len(items) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"kind": item.Kind, "id": item.ID}).
			SetReplacement(item).
			SetUpsert(true))
	}
	if _, err := r.coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to upsert taxonomy: %w", err)
	}
	return nil
}
