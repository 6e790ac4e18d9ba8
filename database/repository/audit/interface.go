package auditRepo

import (
	"context"

	"lexmarket/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry models.AuditLog) (string, error)
	ListByAccount(ctx context.Context, accountID string, limit int64) ([]models.AuditLog, error)
}

type mongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo returns a new AuditLogRepository instance using MongoDB.
func NewMongoAuditRepo(db *mongo.Database) AuditLogRepository {
	return &mongoAuditRepo{
		coll: db.Collection("audit_logs"),
	}
}
