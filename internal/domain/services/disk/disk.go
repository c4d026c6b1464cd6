package disk

import (
	"context"
	"time"

	models "yadisk/internal/domain/models/disk"
)

// ImportService applies import batches atomically
type ImportService interface {
	// Import validates and applies every item of the batch in one transaction.
	// The first invalid item aborts the batch and nothing is committed.
	Import(ctx context.Context, req *ImportRequest) error
}

// TreeService reads subtrees
type TreeService interface {
	// GetNode returns the item and all of its descendants as a nested tree
	GetNode(ctx context.Context, externalID string) (*models.TreeNode, error)
}

// DeleteService removes subtrees
type DeleteService interface {
	// DeleteNode removes the item and all of its descendants
	DeleteNode(ctx context.Context, externalID string, date time.Time) error
}

// HistoryService reads FILE history
type HistoryService interface {
	// GetHistory returns the recorded snapshots of an item, oldest first
	GetHistory(ctx context.Context, externalID string) ([]*models.HistoryNode, error)
}

// ImportRequest is one import batch
type ImportRequest struct {
	UpdateDate time.Time           `json:"updateDate"`
	Items      []models.ImportItem `json:"items"`
}
