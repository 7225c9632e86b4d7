package activityRepo

import (
	"context"
	"time"

	"mentorhub/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new activity record and returns its ID.
func (r *mongoActivityRepo) Create(ctx context.Context, record models.ActivityRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", err
	}
	return record.ID, nil
}

// ListRecent returns the newest records first.
func (r *mongoActivityRepo) ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error) {
	return r.find(ctx, bson.M{}, limit)
}

// ListByActor returns one actor's records, newest first.
func (r *mongoActivityRepo) ListByActor(ctx context.Context, actorID int64, limit int64) ([]models.ActivityRecord, error) {
	return r.find(ctx, bson.M{"actorId": actorID}, limit)
}

func (r *mongoActivityRepo) find(ctx context.Context, filter bson.M, limit int64) ([]models.ActivityRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ActivityRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
