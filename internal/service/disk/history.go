package disk

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	models "yadisk/internal/domain/models/disk"
	"yadisk/internal/domain/repositories"
	diskRepo "yadisk/internal/domain/repositories/disk"
	diskSvc "yadisk/internal/domain/services/disk"
)

type historyService struct {
	itemRepo    diskRepo.ItemRepository
	historyRepo diskRepo.HistoryRepository
	txManager   repositories.TransactionManager
	namespace   uuid.UUID
}

// NewHistoryService creates a new history service
func NewHistoryService(
	itemRepo diskRepo.ItemRepository,
	historyRepo diskRepo.HistoryRepository,
	txManager repositories.TransactionManager,
	namespace uuid.UUID,
) diskSvc.HistoryService {
	return &historyService{
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
		txManager:   txManager,
		namespace:   namespace,
	}
}

// GetHistory returns the snapshots of a live item, oldest first
func (s *historyService) GetHistory(ctx context.Context, externalID string) ([]*models.HistoryNode, error) {
	id := models.DeriveID(s.namespace, externalID)
	var entries []models.HistoryEntry

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		item, err := findItem(txCtx, s.itemRepo, id)
		if err != nil {
			return err
		}
		if err := rejectMissing(item, externalID); err != nil {
			return err
		}

		entries, err = s.historyRepo.ListByItem(txCtx, id)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	nodes := make([]*models.HistoryNode, 0, len(entries))
	for i := range entries {
		nodes = append(nodes, models.NewHistoryNode(&entries[i]))
	}
	return nodes, nil
}
