package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

const (
	collectionLoginEvents = "admin_login_events"
	loginEventRetention   = 90 * 24 * time.Hour
)

// LoginEventRepository implements ports.LoginEventRepository using MongoDB.
type LoginEventRepository struct {
	col *mongo.Collection
}

func NewLoginEventRepository(db *mongo.Database) *LoginEventRepository {
	return &LoginEventRepository{col: db.Collection(collectionLoginEvents)}
}

// Insert persists a login event to the audit collection.
func (r *LoginEventRepository) Insert(ctx context.Context, event *domain.LoginEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"outcome":      string(event.Outcome),
		"remote_ip":    event.RemoteIP,
		"user_agent":   event.UserAgent,
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.AdminID != "" {
		doc["admin_id"] = event.AdminID
	}
	if event.Email != "" {
		doc["email"] = event.Email
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes expires audit entries after the retention window.
func (r *LoginEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "occurred_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(loginEventRetention.Seconds())),
		},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "occurred_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
