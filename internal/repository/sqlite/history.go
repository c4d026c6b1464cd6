package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
)

// HistoryRepository implements diskRepo.HistoryRepository with GORM
type HistoryRepository struct {
	store *Store
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(store *Store) diskRepo.HistoryRepository {
	return &HistoryRepository{store: store}
}

// Append records a snapshot, replacing one with the same item and date
func (r *HistoryRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	rec := &historyRecord{
		ItemID:           entry.ItemID,
		UpdatedAt:        entry.UpdatedAt.UTC(),
		ExternalID:       entry.ExternalID,
		URL:              entry.URL,
		ParentID:         entry.ParentID,
		ParentExternalID: entry.ParentExternalID,
		Size:             entry.Size,
	}
	err := r.store.conn(ctx).Table(r.store.history).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "updated_at"}},
		DoUpdates: clause.AssignmentColumns([]string{"url", "parent_id", "parent_external_id", "size"}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ListByItem returns the snapshots of itemID, oldest first
func (r *HistoryRepository) ListByItem(ctx context.Context, itemID string) ([]models.HistoryEntry, error) {
	var recs []historyRecord
	err := r.store.conn(ctx).Table(r.store.history).
		Where("item_id = ?", itemID).
		Order("updated_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]models.HistoryEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, models.HistoryEntry{
			ItemID:           rec.ItemID,
			ExternalID:       rec.ExternalID,
			URL:              rec.URL,
			ParentID:         rec.ParentID,
			ParentExternalID: rec.ParentExternalID,
			Size:             rec.Size,
			UpdatedAt:        rec.UpdatedAt.UTC(),
		})
	}
	return entries, nil
}
