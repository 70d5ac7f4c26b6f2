package holdRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the hold protocol relies on. The unique
// hold_key index is what makes Acquire idempotent under concurrent retries.
func (repo *MongoHoldRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "hold_key", Value: 1}, {Key: "organization_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "start_time", Value: 1}},
		},
		{
			// For the background sweeper; expiry itself stays a read-time check.
			Keys: bson.D{{Key: "expires_at", Value: 1}},
		},
	}
	if _, err := repo.holdColl.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create session_holds indexes: %w", err)
	}
	return nil
}
