package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContentCounter counts documents in the site content collections.
type ContentCounter struct {
	db *mongo.Database
}

func NewContentCounter(db *mongo.Database) *ContentCounter {
	return &ContentCounter{db: db}
}

func (c *ContentCounter) Count(ctx context.Context, collection string, filter map[string]any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f := bson.M{}
	for k, v := range filter {
		f[k] = v
	}
	n, err := c.db.Collection(collection).CountDocuments(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}
