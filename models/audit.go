package models

import "time"

// AuditLog is one entry of the compliance trail.
type AuditLog struct {
	ID        string                 `bson:"id" json:"id"`
	AccountID string                 `bson:"accountId,omitempty" json:"accountId,omitempty"`
	ActorID   string                 `bson:"actorId,omitempty" json:"actorId,omitempty"`
	Action    string                 `bson:"action" json:"action"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}
