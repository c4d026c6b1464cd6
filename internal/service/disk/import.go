package disk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"yadisk/internal/domain"
	"yadisk/internal/domain/repositories"
	diskRepo "yadisk/internal/domain/repositories/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/metrics"
)

// importService implements the ImportService interface
type importService struct {
	mutator   *treeMutator
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	itemRepo diskRepo.ItemRepository,
	historyRepo diskRepo.HistoryRepository,
	txManager repositories.TransactionManager,
	namespace uuid.UUID,
	logger *slog.Logger,
) diskSvc.ImportService {
	return &importService{
		mutator: &treeMutator{
			itemRepo:    itemRepo,
			historyRepo: historyRepo,
			namespace:   namespace,
		},
		txManager: txManager,
		logger:    logger,
	}
}

// Import prepares the whole batch, then applies it item by item in a single
// transaction. Item N+1 sees the effects of item N.
func (s *importService) Import(ctx context.Context, req *diskSvc.ImportRequest) error {
	if req.UpdateDate.IsZero() {
		return domain.NewValidation("updateDate is required")
	}

	// Batch preparation: reject structurally invalid input before any store call.
	for i := range req.Items {
		if _, err := validateStructure(&req.Items[i]); err != nil {
			metrics.RecordImport(len(req.Items), false)
			return err
		}
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range req.Items {
			if err := s.mutator.apply(txCtx, &req.Items[i], req.UpdateDate); err != nil {
				return fmt.Errorf("import item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordImport(len(req.Items), false)
		return err
	}

	metrics.RecordImport(len(req.Items), true)
	s.logger.Info("batch imported",
		"item_count", len(req.Items),
		"update_date", req.UpdateDate,
	)

	return nil
}
