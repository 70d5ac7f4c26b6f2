package holdRepo

import (
	"errors"

	"caresched/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced to the hold service, which translates them into
// structured conflict responses at the API boundary.
var (
	ErrHoldNotFound   = errors.New("hold not found")
	ErrHoldExpired    = errors.New("hold has expired")
	ErrSlotConflict   = errors.New("a conflicting session already exists for this therapist or client")
	ErrDuplicateHold  = errors.New("an active hold already exists for this therapist and time")
	ErrHoldKeyInUse   = errors.New("hold key already used with different parameters")
	ErrSessionCollide = errors.New("session insert collided with a concurrent confirm")
)

// MongoHoldRepo is the MongoDB-backed HoldRepository.
type MongoHoldRepo struct {
	holdColl    *mongo.Collection
	sessionColl *mongo.Collection
}

// NewMongoHoldRepo constructs a repository over the session_holds and
// sessions collections.
func NewMongoHoldRepo() *MongoHoldRepo {
	db := database.DB()
	return &MongoHoldRepo{
		holdColl:    db.Collection("session_holds"),
		sessionColl: db.Collection("sessions"),
	}
}
