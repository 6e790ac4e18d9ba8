package stepsRepo

import (
	"context"
	"errors"
	"fmt"

	"lexmarket/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoStepRepo) ListByAccount(ctx context.Context, accountID string) ([]models.StepRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"accountId": accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to list steps for account %s: %w", accountID, err)
	}
	defer cursor.Close(ctx)

	var records []models.StepRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode step records: %w", err)
	}
	return records, nil
}

func (r *mongoStepRepo) Get(ctx context.Context, accountID, stepName string) (*models.StepRecord, error) {
	var record models.StepRecord
	err := r.coll.FindOne(ctx, bson.M{"accountId": accountID, "stepName": stepName}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch step %s for account %s: %w", stepName, accountID, err)
	}
	return &record, nil
}

func (r *mongoStepRepo) Upsert(ctx context.Context, record *models.StepRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}
	filter := bson.M{"accountId": record.AccountID, "stepName": record.StepName}
	_, err := r.coll.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert step %s for account %s: %w", record.StepName, record.AccountID, err)
	}
	return nil
}
