package disk

import (
	"context"
	"time"

	models "yadisk/internal/domain/models/disk"
)

// ItemRepository defines data access operations for registry items.
// Implementations participate in the transaction carried by ctx when present.
type ItemRepository interface {
	// GetByID retrieves an item by derived id (domain.ErrNotFound if absent)
	GetByID(ctx context.Context, id string) (*models.Item, error)

	// Upsert inserts or replaces the item keyed by id
	Upsert(ctx context.Context, item *models.Item) error

	// AdjustSizes applies size += delta and updated_at = date to every id
	AdjustSizes(ctx context.Context, ids []string, delta int64, date time.Time) error

	// ListChildren lists the immediate children of a folder (parent index)
	ListChildren(ctx context.Context, parentID string) ([]models.Item, error)

	// DeleteByIDs removes the given items
	DeleteByIDs(ctx context.Context, ids []string) error
}
