package stepsRepo

import (
	"context"
	"fmt"

	"lexmarket/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// StepRecordRepository persists per-account onboarding step records.
type StepRecordRepository interface {
	// ListByAccount returns every step record of the account.
	ListByAccount(ctx context.Context, accountID string) ([]models.StepRecord, error)
	// Get returns the record for one step, or nil, nil when none exists yet.
	Get(ctx context.Context, accountID, stepName string) (*models.StepRecord, error)
	// Upsert creates or replaces the record keyed by (accountID, stepName).
	Upsert(ctx context.Context, record *models.StepRecord) error
}

type mongoStepRepo struct {
	coll *mongo.Collection
}

// NewMongoStepRepo returns a new StepRecordRepository instance using MongoDB.
func NewMongoStepRepo(db *mongo.Database) StepRecordRepository {
	repo := &mongoStepRepo{coll: db.Collection("onboarding_steps")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create onboarding step indexes: %v\n", err)
	}
	return repo
}
