package accountRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexmarket/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo(db *mongo.Database) AccountRepository {
	repo := &MongoAccountRepo{coll: db.Collection("accounts")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create account indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to fetch account with id %s: %w", id, err)
	}
	return &account, nil
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	filter := bson.M{"email": strings.ToLower(email)}
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, err)
	}
	return &account, nil
}

func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	account.Email = strings.ToLower(account.Email)
	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) UpdateContact(ctx context.Context, id string, contact models.ContactUpdate, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"phoneNumber": contact.PhoneNumber,
		"countryId":   contact.CountryID,
		"stateId":     contact.StateID,
		"cityId":      contact.CityID,
		"updatedAt":   at,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update contact for account %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *MongoAccountRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	update := bson.M{"$set": bson.M{"fcmToken": token, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update fcm token for account %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *MongoAccountRepo) UpdateTokenHash(ctx context.Context, id, hash string) error {
	update := bson.M{"$set": bson.M{"tokenHash": hash, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update token for account %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
