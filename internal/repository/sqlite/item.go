package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
)

// ItemRepository implements diskRepo.ItemRepository with GORM
type ItemRepository struct {
	store *Store
}

// NewItemRepository creates a new item repository
func NewItemRepository(store *Store) diskRepo.ItemRepository {
	return &ItemRepository{store: store}
}

// GetByID retrieves an item by its derived id
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var rec itemRecord
	err := r.store.conn(ctx).Table(r.store.items).Where("id = ?", id).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return rec.toModel(), nil
}

// Upsert inserts the item or overwrites the row with the same id
func (r *ItemRepository) Upsert(ctx context.Context, item *models.Item) error {
	rec := newItemRecord(item)
	err := r.store.conn(ctx).Table(r.store.items).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parent_id", "parent_external_id", "size", "url", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// AdjustSizes adds delta to every listed item and stamps date, in one statement
func (r *ItemRepository) AdjustSizes(ctx context.Context, ids []string, delta int64, date time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.store.conn(ctx).Table(r.store.items).Where("id IN ?", ids).Updates(map[string]any{
		"size":       gorm.Expr("size + ?", delta),
		"updated_at": date.UTC(),
	}).Error
	if err != nil {
		return fmt.Errorf("adjust sizes: %w", err)
	}
	return nil
}

// ListChildren returns the direct children of parentID ordered by external id
func (r *ItemRepository) ListChildren(ctx context.Context, parentID string) ([]models.Item, error) {
	var recs []itemRecord
	err := r.store.conn(ctx).Table(r.store.items).
		Where("parent_id = ?", parentID).
		Order("external_id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	children := make([]models.Item, 0, len(recs))
	for i := range recs {
		children = append(children, *recs[i].toModel())
	}
	return children, nil
}

// DeleteByIDs removes every listed item
func (r *ItemRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.store.conn(ctx).Table(r.store.items).Where("id IN ?", ids).Delete(&itemRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}

func newItemRecord(item *models.Item) *itemRecord {
	return &itemRecord{
		ID:               item.ID,
		ExternalID:       item.ExternalID,
		ParentID:         item.ParentID,
		ParentExternalID: item.ParentExternalID,
		ItemType:         string(item.Type),
		Size:             item.Size,
		URL:              item.URL,
		UpdatedAt:        item.UpdatedAt.UTC(),
	}
}

func (rec *itemRecord) toModel() *models.Item {
	return &models.Item{
		ID:               rec.ID,
		ExternalID:       rec.ExternalID,
		ParentID:         rec.ParentID,
		ParentExternalID: rec.ParentExternalID,
		Type:             models.ItemType(rec.ItemType),
		Size:             rec.Size,
		URL:              rec.URL,
		UpdatedAt:        rec.UpdatedAt.UTC(),
	}
}
