package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
)

// ItemRepository implements diskRepo.ItemRepository on the arena
type ItemRepository struct {
	store *Store
}

// NewItemRepository creates a new item repository
func NewItemRepository(store *Store) diskRepo.ItemRepository {
	return &ItemRepository{store: store}
}

// GetByID retrieves an item by its derived id
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var found models.Item
	err := r.store.read(ctx, func(a *arena) error {
		item, ok := a.get(id)
		if !ok {
			return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		found = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// Upsert inserts the item or replaces the stored row with the same id
func (r *ItemRepository) Upsert(ctx context.Context, item *models.Item) error {
	return r.store.write(ctx, func(a *arena) error {
		a.put(*item)
		return nil
	})
}

// AdjustSizes adds delta to the size of every listed item and stamps date
func (r *ItemRepository) AdjustSizes(ctx context.Context, ids []string, delta int64, date time.Time) error {
	return r.store.write(ctx, func(a *arena) error {
		for _, id := range ids {
			item, ok := a.get(id)
			if !ok {
				continue
			}
			if item.Size+delta < 0 {
				return fmt.Errorf("size of %s would become negative", item.ExternalID)
			}
			item.Size += delta
			item.UpdatedAt = date
		}
		return nil
	})
}

// ListChildren returns the direct children of parentID ordered by external id
func (r *ItemRepository) ListChildren(ctx context.Context, parentID string) ([]models.Item, error) {
	var children []models.Item
	err := r.store.read(ctx, func(a *arena) error {
		for id := range a.children[parentID] {
			if item, ok := a.get(id); ok {
				children = append(children, *item)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(children, func(x, y models.Item) int {
		return strings.Compare(x.ExternalID, y.ExternalID)
	})
	return children, nil
}

// DeleteByIDs removes every listed item; unknown ids are ignored
func (r *ItemRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	return r.store.write(ctx, func(a *arena) error {
		for _, id := range ids {
			a.remove(id)
		}
		return nil
	})
}
