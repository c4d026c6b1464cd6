package disk

import (
	"context"

	models "yadisk/internal/domain/models/disk"
)

// HistoryRepository stores the append-only FILE history.
type HistoryRepository interface {
	// Append records a snapshot; a second snapshot with the same
	// (item id, date) replaces the first
	Append(ctx context.Context, entry *models.HistoryEntry) error

	// ListByItem returns snapshots of an item ordered by date ascending
	ListByItem(ctx context.Context, itemID string) ([]models.HistoryEntry, error)
}
