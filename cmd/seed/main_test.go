package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"yadisk/internal/bootstrap"
	"yadisk/internal/config"
	models "yadisk/internal/domain/models/disk"
	"yadisk/internal/seed"
)

func TestApplyBatches(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{StoreDriver: config.StoreMemory, IDNamespace: models.DefaultNamespace}

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()
	services := store.NewServices(cfg, logger)

	batches, err := seed.LoadFile("../../internal/seed/testdata/sample.yaml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	applied, err := applyBatches(ctx, services.Import, batches)
	if err != nil {
		t.Fatalf("applyBatches() error = %v", err)
	}
	if applied != len(batches) {
		t.Errorf("applied = %d, want %d", applied, len(batches))
	}

	root, err := services.Tree.GetNode(ctx, "069cb8d7-bbdd-47d3-ad8f-82ef4c269df1")
	if err != nil {
		t.Fatalf("GetNode() error = %v", err)
	}
	if root.Size != 1984 {
		t.Errorf("size(root) = %d, want 1984", root.Size)
	}
	if got := root.Date.Time().Format(models.TimestampLayout); got != "2022-02-03T15:00:00.000Z" {
		t.Errorf("date(root) = %s", got)
	}
}

func TestApplyBatches_StopsAtBadBatch(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{StoreDriver: config.StoreMemory, IDNamespace: models.DefaultNamespace}

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	services := store.NewServices(cfg, logger)

	batches := []seed.Batch{
		{UpdateDate: "2022-02-01T12:00:00Z", Items: []models.ImportItem{{ID: "a", Type: "FOLDER"}}},
		{UpdateDate: "not a date", Items: []models.ImportItem{{ID: "b", Type: "FOLDER"}}},
	}
	applied, err := applyBatches(ctx, services.Import, batches)
	if err == nil {
		t.Fatal("applyBatches() expected error")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}
