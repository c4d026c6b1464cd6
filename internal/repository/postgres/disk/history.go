package disk

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
	"yadisk/internal/repository/postgres"
)

// PostgresHistoryRepository implements the HistoryRepository interface
type PostgresHistoryRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(config *postgres.RepositoryConfig) diskRepo.HistoryRepository {
	return &PostgresHistoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Append records a snapshot, replacing one with the same item and date
func (r *PostgresHistoryRepository) Append(ctx context.Context, entry *models.HistoryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (item_id, external_id, url, parent_id, parent_external_id, size, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_id, updated_at) DO UPDATE SET
			url = EXCLUDED.url,
			parent_id = EXCLUDED.parent_id,
			parent_external_id = EXCLUDED.parent_external_id,
			size = EXCLUDED.size
	`, r.tables.History)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		entry.ItemID,
		entry.ExternalID,
		entry.URL,
		entry.ParentID,
		entry.ParentExternalID,
		entry.Size,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

// ListByItem returns the snapshots of itemID, oldest first
func (r *PostgresHistoryRepository) ListByItem(ctx context.Context, itemID string) ([]models.HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT item_id, external_id, url, parent_id, parent_external_id, size, updated_at
		FROM %s
		WHERE item_id = $1
		ORDER BY updated_at ASC
	`, r.tables.History)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(
			&e.ItemID,
			&e.ExternalID,
			&e.URL,
			&e.ParentID,
			&e.ParentExternalID,
			&e.Size,
			&e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.UpdatedAt = e.UpdatedAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}
