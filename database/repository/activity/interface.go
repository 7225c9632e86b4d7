package activityRepo

import (
	"context"

	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityRepository stores the admin activity feed.
type ActivityRepository interface {
	Create(ctx context.Context, record models.ActivityRecord) (string, error)
	ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error)
	ListByActor(ctx context.Context, actorID int64, limit int64) ([]models.ActivityRecord, error)
}

type mongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo returns an ActivityRepository backed by db's
// "activity" collection.
func NewMongoActivityRepo(db *mongo.Database) ActivityRepository {
	return &mongoActivityRepo{
		coll: db.Collection("activity"),
	}
}
