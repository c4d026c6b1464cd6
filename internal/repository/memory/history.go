package memory

import (
	"context"
	"slices"

	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
)

// HistoryRepository implements diskRepo.HistoryRepository on the arena
type HistoryRepository struct {
	store *Store
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(store *Store) diskRepo.HistoryRepository {
	return &HistoryRepository{store: store}
}

// Append records a snapshot. A second snapshot with the same date replaces
// the first.
func (r *HistoryRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	return r.store.write(ctx, func(a *arena) error {
		entries := a.history[entry.ItemID]
		for i := range entries {
			if entries[i].UpdatedAt.Equal(entry.UpdatedAt) {
				entries[i] = *entry
				return nil
			}
		}
		a.history[entry.ItemID] = append(entries, *entry)
		return nil
	})
}

// ListByItem returns the snapshots of itemID, oldest first
func (r *HistoryRepository) ListByItem(ctx context.Context, itemID string) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.store.read(ctx, func(a *arena) error {
		entries = append(entries, a.history[itemID]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(x, y models.HistoryEntry) int {
		return x.UpdatedAt.Compare(y.UpdatedAt)
	})
	return entries, nil
}
