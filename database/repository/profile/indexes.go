package profileRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoProfileRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Partial index: empty profiles carry no enrollment number yet.
	enrollmentOpts := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"enrollmentNumber": bson.M{"$type": "string"}})

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "accountId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "enrollmentNumber", Value: 1}}, Options: enrollmentOpts},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submittedForReviewAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
