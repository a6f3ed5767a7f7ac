package repository

import (
	"context"

	"video-studio/internal/history/domain/model"
)

// HistoryRepository defines persistence operations for video records.
// Iteration order is insertion order, newest-inserted first.
type HistoryRepository interface {
	// Insert prepends a record, making it the most-recent-inserted entry.
	Insert(ctx context.Context, record model.VideoRecord) (model.VideoRecord, error)
	FindByID(ctx context.Context, id string) (model.VideoRecord, error)
	// Update applies mutate to the stored record in place.
	Update(ctx context.Context, id string, mutate func(*model.VideoRecord)) (model.VideoRecord, error)
	Remove(ctx context.Context, id string) (model.VideoRecord, error)
	// Truncate keeps the first maxSize records in insertion order.
	Truncate(ctx context.Context, maxSize int) error
	Snapshot(ctx context.Context) ([]model.VideoRecord, error)
	Len(ctx context.Context) (int, error)
}
