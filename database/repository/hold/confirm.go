package holdRepo

import (
	"context"
	"fmt"
	"time"

	"caresched/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConfirmTransactionally converts a hold into a session inside a single Mongo
// transaction so at most one concurrent confirm can win for a given
// therapist/time. The hold's expiry and any overlapping session are
// re-validated inside the transaction; losers get a sentinel error and no
// partial commit.
func (repo *MongoHoldRepo) ConfirmTransactionally(ctx context.Context, holdID string, session *models.Session) error {
	client := repo.holdColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var hold models.SessionHold
		if err := repo.holdColl.FindOne(sc, bson.M{"id": holdID}).Decode(&hold); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrHoldNotFound
			}
			return fmt.Errorf("fetch hold failed: %w", err)
		}

		now := time.Now()
		if hold.Expired(now) {
			return ErrHoldExpired
		}

		// No therapist or client may be double-booked: any non-cancelled
		// session overlapping the held range loses us the confirm.
		overlap := bson.M{
			"status":     bson.M{"$ne": models.SessionStatusCancelled},
			"start_time": bson.M{"$lt": hold.EndTime},
			"end_time":   bson.M{"$gt": hold.StartTime},
			"$or": bson.A{
				bson.M{"therapist_id": hold.TherapistID},
				bson.M{"client_id": hold.ClientID},
			},
		}
		count, err := repo.sessionColl.CountDocuments(sc, overlap)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotConflict
		}

		session.TherapistID = hold.TherapistID
		session.ClientID = hold.ClientID
		session.StartTime = hold.StartTime
		session.EndTime = hold.EndTime
		session.OrganizationID = hold.OrganizationID
		session.Status = models.SessionStatusScheduled
		session.CreatedAt = now

		if _, err := repo.sessionColl.InsertOne(sc, session); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSessionCollide
			}
			return fmt.Errorf("insert session failed: %w", err)
		}

		if _, err := repo.holdColl.DeleteOne(sc, bson.M{"id": holdID}); err != nil {
			return fmt.Errorf("delete hold failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
