package profileRepo

import (
	"context"
	"errors"
	"fmt"

	"lexmarket/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo(db *mongo.Database) ProfileRepository {
	repo := &MongoProfileRepo{coll: db.Collection("lawyer_profiles")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create profile indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProfileRepo) GetByAccountID(ctx context.Context, accountID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile for account %s: %w", accountID, err)
	}
	profile.Status = models.ParseProfileStatus(string(profile.Status))
	return &profile, nil
}

func (r *MongoProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("profile for account %s already exists: %w", profile.AccountID, err)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	filter := bson.M{"accountId": profile.AccountID}
	result, err := r.coll.ReplaceOne(ctx, filter, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEnrollment
		}
		return fmt.Errorf("failed to update profile for account %s: %w", profile.AccountID, err)
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *MongoProfileRepo) EnrollmentNumberTaken(ctx context.Context, number, exceptAccountID string) (bool, error) {
	filter := bson.M{
		"enrollmentNumber": number,
		"accountId":        bson.M{"$ne": exceptAccountID},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment number: %w", err)
	}
	return count > 0, nil
}

// UpdateStatusIf is a single conditional write, so two concurrent callers
// racing on the same expected status cannot both succeed.
func (r *MongoProfileRepo) UpdateStatusIf(ctx context.Context, accountID string, change models.StatusChange) (bool, error) {
	from := make([]string, 0, len(change.From))
	for _, s := range change.From {
		from = append(from, string(s))
	}
	filter := bson.M{
		"accountId": accountID,
		"status":    bson.M{"$in": from},
	}

	set := bson.M{"status": change.To, "updatedAt": change.At}
	unset := bson.M{}
	if change.SubmittedAt != nil {
		set["submittedForReviewAt"] = *change.SubmittedAt
	}
	if change.VerifiedAt != nil {
		set["verifiedAt"] = *change.VerifiedAt
	} else if change.To == models.ProfileRejected {
		unset["verifiedAt"] = ""
	}
	if change.RejectionReason != nil {
		if *change.RejectionReason == "" {
			unset["rejectionReason"] = ""
		} else {
			set["rejectionReason"] = *change.RejectionReason
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update status for account %s: %w", accountID, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *MongoProfileRepo) ListByStatus(ctx context.Context, status models.ProfileStatus, limit int64) ([]models.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedForReviewAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles with status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}
