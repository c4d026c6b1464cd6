package disk

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
)

// treeMutator applies validated import items inside an open transaction
// and keeps every ancestor's size equal to the sum of its FILE descendants.
type treeMutator struct {
	itemRepo    diskRepo.ItemRepository
	historyRepo diskRepo.HistoryRepository
	namespace   uuid.UUID
}

// apply validates one descriptor against the current transaction state and
// writes it. Ancestor sizes are first reversed along the old parent chain,
// then reapplied along the new one.
func (m *treeMutator) apply(ctx context.Context, item *models.ImportItem, date time.Time) error {
	id := models.DeriveID(m.namespace, item.ID)

	existing, err := findItem(ctx, m.itemRepo, id)
	if err != nil {
		return err
	}

	var parent *models.Item
	var parentID *string
	if item.HasParent() {
		pid := models.DeriveID(m.namespace, *item.ParentID)
		parentID = &pid
		if parent, err = findItem(ctx, m.itemRepo, pid); err != nil {
			return err
		}
	}

	itemType, err := validateItem(item, existing, parent)
	if err != nil {
		return err
	}

	var newChain []string
	if parentID != nil {
		newChain, err = ancestorChain(ctx, m.itemRepo, *parentID)
		if err != nil {
			return err
		}
		if slices.Contains(newChain, id) {
			return invalidItem(item, fmt.Errorf("parent %q is the item itself or one of its descendants", *item.ParentID))
		}
	}

	// Reverse the old contribution before anything else is written.
	if existing != nil && existing.ParentID != nil {
		oldChain, err := ancestorChain(ctx, m.itemRepo, *existing.ParentID)
		if err != nil {
			return err
		}
		if err := m.propagate(ctx, oldChain, -existing.Size, date); err != nil {
			return err
		}
	}

	record := &models.Item{
		ID:         id,
		ExternalID: item.ID,
		ParentID:   parentID,
		Type:       itemType,
		UpdatedAt:  date,
	}
	if parentID != nil {
		parentExternalID := *item.ParentID
		record.ParentExternalID = &parentExternalID
	}

	switch itemType {
	case models.ItemTypeFile:
		record.Size = *item.Size
		record.URL = item.URL
	case models.ItemTypeFolder:
		// Folder size is derived; keep whatever propagation accumulated.
		if existing != nil {
			record.Size = existing.Size
		}
	}

	if err := m.itemRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("upsert item %s: %w", item.ID, err)
	}

	if itemType == models.ItemTypeFile {
		entry := &models.HistoryEntry{
			ItemID:           record.ID,
			ExternalID:       record.ExternalID,
			URL:              record.URL,
			ParentID:         record.ParentID,
			ParentExternalID: record.ParentExternalID,
			Size:             record.Size,
			UpdatedAt:        date,
		}
		if err := m.historyRepo.Append(ctx, entry); err != nil {
			return fmt.Errorf("append history for %s: %w", item.ID, err)
		}
	}

	return m.propagate(ctx, newChain, record.Size, date)
}

// propagate applies size += delta to the whole chain as one store call and
// stamps every ancestor with date.
func (m *treeMutator) propagate(ctx context.Context, chain []string, delta int64, date time.Time) error {
	if len(chain) == 0 {
		return nil
	}
	if err := m.itemRepo.AdjustSizes(ctx, chain, delta, date); err != nil {
		return fmt.Errorf("propagate size: %w", err)
	}
	return nil
}

// rejectMissing turns a nil lookup into a NotFoundError for externalID.
func rejectMissing(item *models.Item, externalID string) error {
	if item == nil {
		return domain.NewNotFound(externalID)
	}
	return nil
}
