package holdRepo

import (
	"context"
	"fmt"
	"time"

	"caresched/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const opTimeout = 5 * time.Second

func (repo *MongoHoldRepo) Create(ctx context.Context, hold *models.SessionHold) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Reject a second active hold on the same therapist/time from any tenant.
	// Expired rows are ignorable, so they do not block new holds.
	now := time.Now()
	filter := bson.M{
		"therapist_id": hold.TherapistID,
		"expires_at":   bson.M{"$gt": now},
		"start_time":   bson.M{"$lt": hold.EndTime},
		"end_time":     bson.M{"$gt": hold.StartTime},
	}
	count, err := repo.holdColl.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check for active holds: %w", err)
	}
	if count > 0 {
		return ErrDuplicateHold
	}

	if _, err := repo.holdColl.InsertOne(ctx, hold); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrHoldKeyInUse
		}
		return fmt.Errorf("failed to insert hold: %w", err)
	}
	return nil
}

func (repo *MongoHoldRepo) GetByID(ctx context.Context, orgID, holdID string) (*models.SessionHold, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var hold models.SessionHold
	filter := bson.M{"id": holdID, "organization_id": orgID}
	if err := repo.holdColl.FindOne(ctx, filter).Decode(&hold); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrHoldNotFound
		}
		return nil, fmt.Errorf("failed to fetch hold %s: %w", holdID, err)
	}
	return &hold, nil
}

func (repo *MongoHoldRepo) GetByHoldKey(ctx context.Context, orgID, holdKey string) (*models.SessionHold, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var hold models.SessionHold
	filter := bson.M{"hold_key": holdKey, "organization_id": orgID}
	if err := repo.holdColl.FindOne(ctx, filter).Decode(&hold); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrHoldNotFound
		}
		return nil, fmt.Errorf("failed to fetch hold by key: %w", err)
	}
	return &hold, nil
}

// Delete is org-scoped: a foreign tenant's delete matches zero documents and
// is reported as not-found, never as success.
func (repo *MongoHoldRepo) Delete(ctx context.Context, orgID, holdID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := repo.holdColl.DeleteOne(ctx, bson.M{"id": holdID, "organization_id": orgID})
	if err != nil {
		return fmt.Errorf("failed to delete hold %s: %w", holdID, err)
	}
	if res.DeletedCount == 0 {
		return ErrHoldNotFound
	}
	return nil
}

func (repo *MongoHoldRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := repo.holdColl.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired holds: %w", err)
	}
	return res.DeletedCount, nil
}
