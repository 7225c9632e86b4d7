// Package activity writes and reads the admin activity feed.
package activity

import (
	"context"
	"time"

	activityRepo "mentorhub/database/repository/activity"
	"mentorhub/models"

	"go.uber.org/zap"
)

// DefaultFeedLimit is used when a caller asks for a non-positive limit.
const DefaultFeedLimit = 50

// Recorder appends successful actions to the feed. Recording never fails the
// action that triggered it.
type Recorder struct {
	Repo   activityRepo.ActivityRepository
	Logger *zap.Logger
}

func NewRecorder(repo activityRepo.ActivityRepository, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{Repo: repo, Logger: logger}
}

// Record stores one action. A nil Recorder is a no-op.
func (r *Recorder) Record(ctx context.Context, actor models.Actor, action, targetID, detail string) {
	if r == nil || r.Repo == nil {
		return
	}
	rec := models.ActivityRecord{
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Action:    action,
		TargetID:  targetID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if _, err := r.Repo.Create(ctx, rec); err != nil {
		r.Logger.Warn("failed to record activity",
			zap.String("action", action),
			zap.String("target", targetID),
			zap.Error(err))
	}
}

// Feed lists recent activity, optionally for one actor.
func (r *Recorder) Feed(ctx context.Context, actorID int64, limit int64) ([]models.ActivityRecord, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if actorID > 0 {
		return r.Repo.ListByActor(ctx, actorID, limit)
	}
	return r.Repo.ListRecent(ctx, limit)
}
