package store_test

import (
	"fmt"
	"sync"
	"testing"

	"video-studio/internal/shared/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string
	Value int
}

func newRecordStore() *store.Store[record] {
	return store.New(func(r record) string { return r.ID })
}

func TestStore_InsertPrepends(t *testing.T) {
	s := newRecordStore()

	s.Insert(record{ID: "a", Value: 1})
	s.Insert(record{ID: "b", Value: 2})
	s.Append(record{ID: "c", Value: 3})

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "b", snapshot[0].ID)
	assert.Equal(t, "a", snapshot[1].ID)
	assert.Equal(t, "c", snapshot[2].ID)
}

func TestStore_FindByID(t *testing.T) {
	s := newRecordStore()
	s.Insert(record{ID: "a", Value: 1})

	got, err := s.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Value)

	_, err = s.FindByID("missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestStore_FindOne(t *testing.T) {
	s := newRecordStore()
	s.Append(record{ID: "a", Value: 1})
	s.Append(record{ID: "b", Value: 2})
	s.Append(record{ID: "c", Value: 2})

	got, err := s.FindOne(func(r record) bool { return r.Value == 2 })
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	_, err = s.FindOne(func(r record) bool { return r.Value > 10 })
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestStore_UpdateInPlace(t *testing.T) {
	s := newRecordStore()
	s.Insert(record{ID: "a", Value: 1})

	updated, err := s.Update("a", func(r *record) { r.Value = 42 })
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Value)

	got, err := s.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Value)

	_, err = s.Update("missing", func(r *record) {})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestStore_Remove(t *testing.T) {
	s := newRecordStore()
	s.Append(record{ID: "a"})
	s.Append(record{ID: "b"})

	removed, err := s.Remove("a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)
	assert.Equal(t, 1, s.Len())

	_, err = s.Remove("a")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestStore_TruncateEvictsTail(t *testing.T) {
	s := newRecordStore()
	for i := 0; i < 5; i++ {
		s.Insert(record{ID: fmt.Sprintf("r%d", i)})
	}

	s.Truncate(3)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 3)
	// Insert prepends, so the newest three survive.
	assert.Equal(t, "r4", snapshot[0].ID)
	assert.Equal(t, "r3", snapshot[1].ID)
	assert.Equal(t, "r2", snapshot[2].ID)

	s.Truncate(-1)
	assert.Equal(t, 0, s.Len())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := newRecordStore()
	s.Append(record{ID: "a", Value: 1})

	snapshot := s.Snapshot()
	snapshot[0].Value = 99

	got, err := s.FindByID("a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Value)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := newRecordStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Insert(record{ID: fmt.Sprintf("r%d", i), Value: i})
			s.FindByID(fmt.Sprintf("r%d", i))
			s.Len()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
