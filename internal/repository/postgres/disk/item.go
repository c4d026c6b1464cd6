package disk

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
	"yadisk/internal/repository/postgres"
)

const itemColumns = `id, external_id, parent_id, parent_external_id, item_type, size, url, updated_at`

// PostgresItemRepository implements the ItemRepository interface
type PostgresItemRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewItemRepository creates a new item repository
func NewItemRepository(config *postgres.RepositoryConfig) diskRepo.ItemRepository {
	return &PostgresItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves an item by its derived id
func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, itemColumns, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	item, err := scanItem(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return item, nil
}

// Upsert inserts the item or overwrites the row with the same id
func (r *PostgresItemRepository) Upsert(ctx context.Context, item *models.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			parent_external_id = EXCLUDED.parent_external_id,
			size = EXCLUDED.size,
			url = EXCLUDED.url,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Items, itemColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		item.ID,
		item.ExternalID,
		item.ParentID,
		item.ParentExternalID,
		string(item.Type),
		item.Size,
		item.URL,
		item.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgCheckViolation(err) {
			return fmt.Errorf("item %s: %w", item.ExternalID, domain.ErrValidation)
		}
		return fmt.Errorf("upsert item: %w", err)
	}

	return nil
}

// AdjustSizes adds delta to every listed item and stamps date, in one statement
func (r *PostgresItemRepository) AdjustSizes(ctx context.Context, ids []string, delta int64, date time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET size = size + $2, updated_at = $3
		WHERE id = ANY($1::text[])
	`, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, ids, delta, date); err != nil {
		return fmt.Errorf("adjust sizes: %w", err)
	}

	return nil
}

// ListChildren returns the direct children of parentID ordered by external id
func (r *PostgresItemRepository) ListChildren(ctx context.Context, parentID string) ([]models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id = $1
		ORDER BY external_id ASC
	`, itemColumns, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children: %w", err)
	}

	return children, nil
}

// DeleteByIDs removes every listed item
func (r *PostgresItemRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1::text[])`, r.tables.Items)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}

	return nil
}

func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	var itemType string
	err := row.Scan(
		&item.ID,
		&item.ExternalID,
		&item.ParentID,
		&item.ParentExternalID,
		&itemType,
		&item.Size,
		&item.URL,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Type = models.ItemType(itemType)
	item.UpdatedAt = item.UpdatedAt.UTC()
	return &item, nil
}
