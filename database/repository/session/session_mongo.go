package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caresched/database"
	"caresched/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrSessionNotFound = errors.New("session not found")

// MongoSessionRepo is the MongoDB-backed SessionRepository.
type MongoSessionRepo struct {
	sessionColl *mongo.Collection
}

func NewMongoSessionRepo() *MongoSessionRepo {
	return &MongoSessionRepo{sessionColl: database.DB().Collection("sessions")}
}

func (repo *MongoSessionRepo) ListForWindow(ctx context.Context, orgID string, start, end time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"organization_id": orgID,
		"status":          bson.M{"$ne": models.SessionStatusCancelled},
		"start_time":      bson.M{"$lt": end},
		"end_time":        bson.M{"$gt": start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.sessionColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

func (repo *MongoSessionRepo) GetByID(ctx context.Context, orgID, sessionID string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	filter := bson.M{"id": sessionID, "organization_id": orgID}
	if err := repo.sessionColl.FindOne(ctx, filter).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", sessionID, err)
	}
	return &session, nil
}
