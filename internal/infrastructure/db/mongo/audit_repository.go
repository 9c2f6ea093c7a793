package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/account-system/internal/core/domain"
	"github.com/clinicore/account-system/internal/core/ports"
)

const auditCollection = "identity_audit"

// AuditRepository appends identity operations to the audit trail collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

var _ ports.AuditRecorder = (*AuditRepository)(nil)

func (r *AuditRepository) Record(ctx context.Context, entry domain.AuditEntry) error {
	doc := bson.M{
		"action":      entry.Action,
		"occurred_at": entry.OccurredAt.UTC(),
	}
	if entry.ActorID != 0 {
		doc["actor_id"] = entry.ActorID
	}
	if entry.TargetID != 0 {
		doc["target_id"] = entry.TargetID
	}
	if entry.TargetName != "" {
		doc["target_name"] = entry.TargetName
	}
	if entry.Detail != "" {
		doc["detail"] = entry.Detail
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes audit-trail queries rely on.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}
