package activityRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"mentorhub/models"

	"github.com/google/uuid"
)

// memoryActivityRepo keeps the feed in process memory. Used when no
// DATABASE_URL is configured.
type memoryActivityRepo struct {
	mu      sync.RWMutex
	records []models.ActivityRecord
}

// NewMemoryActivityRepo returns an empty in-memory ActivityRepository.
func NewMemoryActivityRepo() ActivityRepository {
	return &memoryActivityRepo{}
}

func (r *memoryActivityRepo) Create(ctx context.Context, record models.ActivityRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.mu.Lock()
	r.records = append(r.records, record)
	r.mu.Unlock()
	return record.ID, nil
}

func (r *memoryActivityRepo) ListRecent(ctx context.Context, limit int64) ([]models.ActivityRecord, error) {
	return r.filter(func(models.ActivityRecord) bool { return true }, limit), nil
}

func (r *memoryActivityRepo) ListByActor(ctx context.Context, actorID int64, limit int64) ([]models.ActivityRecord, error) {
	return r.filter(func(rec models.ActivityRecord) bool { return rec.ActorID == actorID }, limit), nil
}

func (r *memoryActivityRepo) filter(keep func(models.ActivityRecord) bool, limit int64) []models.ActivityRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.ActivityRecord{}
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}
