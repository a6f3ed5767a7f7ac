package memory

import (
	"context"

	"video-studio/internal/history/domain/model"
	"video-studio/internal/history/domain/repository"
	"video-studio/internal/shared/store"
)

// HistoryRepository is an in-memory video record store backed by the shared
// record store. Records are prepended, so insertion order is newest-first.
type HistoryRepository struct {
	videos *store.Store[model.VideoRecord]
}

// NewHistoryRepository creates an empty in-memory history repository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{
		videos: store.New(func(v model.VideoRecord) string { return v.ID }),
	}
}

// Insert prepends the record.
func (r *HistoryRepository) Insert(ctx context.Context, record model.VideoRecord) (model.VideoRecord, error) {
	return r.videos.Insert(record), nil
}

// FindByID returns the record with the given ID.
func (r *HistoryRepository) FindByID(ctx context.Context, id string) (model.VideoRecord, error) {
	record, err := r.videos.FindByID(id)
	if err != nil {
		return model.VideoRecord{}, model.ErrVideoNotFound
	}
	return record, nil
}

// Update applies mutate to the stored record in place.
func (r *HistoryRepository) Update(ctx context.Context, id string, mutate func(*model.VideoRecord)) (model.VideoRecord, error) {
	record, err := r.videos.Update(id, mutate)
	if err != nil {
		return model.VideoRecord{}, model.ErrVideoNotFound
	}
	return record, nil
}

// Remove deletes the record with the given ID and returns it.
func (r *HistoryRepository) Remove(ctx context.Context, id string) (model.VideoRecord, error) {
	record, err := r.videos.Remove(id)
	if err != nil {
		return model.VideoRecord{}, model.ErrVideoNotFound
	}
	return record, nil
}

// Truncate keeps the first maxSize records in insertion order.
func (r *HistoryRepository) Truncate(ctx context.Context, maxSize int) error {
	r.videos.Truncate(maxSize)
	return nil
}

// Snapshot returns a copy of all records in insertion order.
func (r *HistoryRepository) Snapshot(ctx context.Context) ([]model.VideoRecord, error) {
	return r.videos.Snapshot(), nil
}

// Len returns the number of stored records.
func (r *HistoryRepository) Len(ctx context.Context) (int, error) {
	return r.videos.Len(), nil
}

var _ repository.HistoryRepository = (*HistoryRepository)(nil)
