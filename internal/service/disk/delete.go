package disk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	models "yadisk/internal/domain/models/disk"
	"yadisk/internal/domain/repositories"
	diskRepo "yadisk/internal/domain/repositories/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/metrics"
)

// deleteService implements the DeleteService interface
type deleteService struct {
	itemRepo  diskRepo.ItemRepository
	txManager repositories.TransactionManager
	namespace uuid.UUID
	logger    *slog.Logger
}

// NewDeleteService creates a new delete service
func NewDeleteService(
	itemRepo diskRepo.ItemRepository,
	txManager repositories.TransactionManager,
	namespace uuid.UUID,
	logger *slog.Logger,
) diskSvc.DeleteService {
	return &deleteService{
		itemRepo:  itemRepo,
		txManager: txManager,
		namespace: namespace,
		logger:    logger,
	}
}

// DeleteNode removes the item and its whole subtree, then subtracts the
// removed size from every ancestor. History rows are kept.
func (s *deleteService) DeleteNode(ctx context.Context, externalID string, date time.Time) error {
	var deleted int

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		root, err := findItem(txCtx, s.itemRepo, models.DeriveID(s.namespace, externalID))
		if err != nil {
			return err
		}
		if err := rejectMissing(root, externalID); err != nil {
			return err
		}

		var chain []string
		if root.ParentID != nil {
			if chain, err = ancestorChain(txCtx, s.itemRepo, *root.ParentID); err != nil {
				return err
			}
		}

		nodes, err := collectSubtree(txCtx, s.itemRepo, root)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, n.item.ID)
		}
		if err := s.itemRepo.DeleteByIDs(txCtx, ids); err != nil {
			return fmt.Errorf("delete subtree %s: %w", externalID, err)
		}

		if len(chain) > 0 {
			if err := s.itemRepo.AdjustSizes(txCtx, chain, -root.Size, date); err != nil {
				return fmt.Errorf("propagate size: %w", err)
			}
		}

		deleted = len(ids)
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordDeletedItems(deleted)
	s.logger.Info("subtree deleted",
		"id", externalID,
		"deleted_count", deleted,
		"date", date,
	)

	return nil
}
