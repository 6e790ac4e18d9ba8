package database

import (
	"context"
	"fmt"
	"time"

	"lexmarket/config"
	"lexmarket/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// connectTimeout bounds the initial connect and ping.
const connectTimeout = 10 * time.Second

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// Connect dials MongoDB and verifies the primary answers. Transactions need a
// replica set or sharded deployment behind DatabaseURL.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetAppName("lexmarket").
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB primary: %w", err)
	}
	return client, nil
}

// InitDB connects the global client and exits the process when MongoDB is unreachable.
func InitDB() {
	client, err := Connect(context.Background(), &config.AppConfig)
	if err != nil {
		utils.GetLogger().Fatal("database: startup failed", zap.Error(err))
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
}

// DB returns the application database handle.
func DB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}
