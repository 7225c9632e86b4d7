package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) (*Store[doc], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New[doc](client, "test:", time.Minute), mr
}

func TestPutGetDelete(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "a", &doc{Name: "grid", Count: 1}))
	assert.True(t, mr.Exists("test:a"))
	assert.Equal(t, time.Minute, mr.TTL("test:a"))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, doc{Name: "grid", Count: 1}, *got)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "a"))
}

func TestUpdate(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a", &doc{Count: 1}))

	got, err := s.Update(ctx, "a", func(d *doc) error {
		d.Count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)

	stored, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Count)
}

func TestUpdateAbortsOnError(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a", &doc{Count: 1}))

	boom := errors.New("boom")
	_, err := s.Update(ctx, "a", func(d *doc) error {
		d.Count = 100
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Count)
}

func TestUpdateMissing(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Update(context.Background(), "nope", func(d *doc) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}
