// Package reference serves the platform's read-only reference collections to
// dashboard pages, cached in Redis.
package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mentorhub/models"
	"mentorhub/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownCollection is returned for a collection name that is not served.
var ErrUnknownCollection = errors.New("unknown reference collection")

// ReferenceAPI is the part of the platform client that lists reference data.
type ReferenceAPI interface {
	ListKelas(ctx context.Context) ([]models.Kelas, error)
	ListMataPelajaran(ctx context.Context) ([]models.MataPelajaran, error)
	ListMentors(ctx context.Context) ([]models.Mentor, error)
	ListJadwalSesi(ctx context.Context) ([]models.JadwalSesi, error)
	ListPengumuman(ctx context.Context) ([]models.Pengumuman, error)
	ListSilabus(ctx context.Context) ([]models.Silabus, error)
}

// ReferenceService reads reference collections on behalf of a role. Cached
// copies are never shared across roles.
type ReferenceService interface {
	LoadDashboard(ctx context.Context, role string) (*models.DashboardReference, error)
	Collection(ctx context.Context, role, name string) (json.RawMessage, error)
	Refresh(ctx context.Context) error
}

// cacheScopes are the roles whose cached collections Refresh drops.
var cacheScopes = []string{utils.RoleAdmin, utils.RoleMentor, utils.RoleStudent}

type DefaultReferenceService struct {
	API    ReferenceAPI
	Cache  Cache
	Logger *zap.Logger
}

func NewDefaultReferenceService(api ReferenceAPI, cache Cache, logger *zap.Logger) *DefaultReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReferenceService{API: api, Cache: cache, Logger: logger}
}

// cached returns a collection from the cache, fetching and storing it on a miss.
// Cache failures fall through to the platform.
func cached[T any](ctx context.Context, s *DefaultReferenceService, scope, name string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, scope, name)
		if err == nil {
			var items []T
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
			s.Logger.Warn("discarding unreadable cached collection", zap.String("collection", name))
		} else if !errors.Is(err, errCacheMiss) {
			s.Logger.Warn("reference cache read failed", zap.String("collection", name), zap.Error(err))
		}
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if s.Cache != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.Cache.Set(ctx, scope, name, data); err != nil {
				s.Logger.Warn("reference cache write failed", zap.String("collection", name), zap.Error(err))
			}
		}
	}
	return items, nil
}

// LoadDashboard fetches every reference collection in parallel. Any single
// failure fails the whole load.
func (s *DefaultReferenceService) LoadDashboard(ctx context.Context, role string) (*models.DashboardReference, error) {
	var ref models.DashboardReference
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		ref.Kelas, err = cached(gctx, s, role, models.CollectionKelas, s.API.ListKelas)
		return err
	})
	g.Go(func() (err error) {
		ref.MataPelajaran, err = cached(gctx, s, role, models.CollectionMataPelajaran, s.API.ListMataPelajaran)
		return err
	})
	g.Go(func() (err error) {
		ref.Mentors, err = cached(gctx, s, role, models.CollectionMentors, s.API.ListMentors)
		return err
	})
	g.Go(func() (err error) {
		ref.JadwalSesi, err = cached(gctx, s, role, models.CollectionJadwalSesi, s.API.ListJadwalSesi)
		return err
	})
	g.Go(func() (err error) {
		ref.Pengumuman, err = cached(gctx, s, role, models.CollectionPengumuman, s.API.ListPengumuman)
		return err
	})
	g.Go(func() (err error) {
		ref.Silabus, err = cached(gctx, s, role, models.CollectionSilabus, s.API.ListSilabus)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ref, nil
}

// Refresh drops every cached collection in every role scope, so the next read
// refetches with its caller's token.
func (s *DefaultReferenceService) Refresh(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	var errs []error
	for _, scope := range cacheScopes {
		if err := s.Cache.Delete(ctx, scope, models.ReferenceCollections...); err != nil {
			errs = append(errs, fmt.Errorf("failed to invalidate %s references: %w", scope, err))
		}
	}
	return errors.Join(errs...)
}

// Collection returns one collection, encoded.
func (s *DefaultReferenceService) Collection(ctx context.Context, role, name string) (json.RawMessage, error) {
	var (
		items interface{}
		err   error
	)
	switch name {
	case models.CollectionKelas:
		items, err = cached(ctx, s, role, name, s.API.ListKelas)
	case models.CollectionMataPelajaran:
		items, err = cached(ctx, s, role, name, s.API.ListMataPelajaran)
	case models.CollectionMentors:
		items, err = cached(ctx, s, role, name, s.API.ListMentors)
	case models.CollectionJadwalSesi:
		items, err = cached(ctx, s, role, name, s.API.ListJadwalSesi)
	case models.CollectionPengumuman:
		items, err = cached(ctx, s, role, name, s.API.ListPengumuman)
	case models.CollectionSilabus:
		items, err = cached(ctx, s, role, name, s.API.ListSilabus)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(items)
}
