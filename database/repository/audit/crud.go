package auditRepo

import (
	"context"
	"time"

	"lexmarket/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new audit entry and returns its ID.
func (r *mongoAuditRepo) Create(ctx context.Context, entry models.AuditLog) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

// ListByAccount fetches the most recent entries recorded for an account.
func (r *mongoAuditRepo) ListByAccount(ctx context.Context, accountID string, limit int64) ([]models.AuditLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"accountId": accountID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.AuditLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
