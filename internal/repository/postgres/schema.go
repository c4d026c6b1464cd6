package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema creates the registry tables and indexes if they do not exist
func EnsureSchema(ctx context.Context, config *RepositoryConfig) error {
	t := config.Tables
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id                 TEXT PRIMARY KEY,
				external_id        TEXT NOT NULL UNIQUE,
				parent_id          TEXT,
				parent_external_id TEXT,
				item_type          TEXT NOT NULL CHECK (item_type IN ('FOLDER', 'FILE')),
				size               BIGINT NOT NULL DEFAULT 0 CHECK (size >= 0),
				url                VARCHAR(255),
				updated_at         TIMESTAMPTZ NOT NULL
			)`, t.Items),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_parent_id_idx ON %s (parent_id)`, t.Items, t.Items),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				item_id            TEXT NOT NULL,
				external_id        TEXT NOT NULL,
				url                VARCHAR(255),
				parent_id          TEXT,
				parent_external_id TEXT,
				size               BIGINT NOT NULL,
				updated_at         TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (item_id, updated_at)
			)`, t.History),
	}

	for _, stmt := range statements {
		if _, err := config.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	if config.Logger != nil {
		config.Logger.Info("schema ready", "items", t.Items, "history", t.History)
	}
	return nil
}

// DropSchema removes the registry tables
func DropSchema(ctx context.Context, config *RepositoryConfig) error {
	query := fmt.Sprintf(`DROP TABLE IF EXISTS %s, %s CASCADE`, config.Tables.History, config.Tables.Items)
	if _, err := config.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}
