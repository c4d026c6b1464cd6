package disk

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	models "yadisk/internal/domain/models/disk"
	"yadisk/internal/domain/repositories"
	diskRepo "yadisk/internal/domain/repositories/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/metrics"
)

// treeService implements the TreeService interface
type treeService struct {
	itemRepo  diskRepo.ItemRepository
	txManager repositories.TransactionManager
	namespace uuid.UUID
	logger    *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	itemRepo diskRepo.ItemRepository,
	txManager repositories.TransactionManager,
	namespace uuid.UUID,
	logger *slog.Logger,
) diskSvc.TreeService {
	return &treeService{
		itemRepo:  itemRepo,
		txManager: txManager,
		namespace: namespace,
		logger:    logger,
	}
}

// GetNode builds the nested tree rooted at externalID
func (s *treeService) GetNode(ctx context.Context, externalID string) (*models.TreeNode, error) {
	var nodes []subtreeNode

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		root, err := findItem(txCtx, s.itemRepo, models.DeriveID(s.namespace, externalID))
		if err != nil {
			return err
		}
		if err := rejectMissing(root, externalID); err != nil {
			return err
		}

		nodes, err = collectSubtree(txCtx, s.itemRepo, root)
		return err
	})
	if err != nil {
		return nil, err
	}

	tree := assembleTree(nodes)
	metrics.ObserveTreeNodes(len(nodes))

	s.logger.Debug("tree built",
		"id", externalID,
		"node_count", len(nodes),
	)

	return tree, nil
}

// assembleTree nests a flat subtree bottom-up by descending depth, so every
// folder's children are complete before the folder is attached to its parent.
// nodes[0] must be the root.
func assembleTree(nodes []subtreeNode) *models.TreeNode {
	if len(nodes) == 0 {
		return nil
	}

	built := make(map[string]*models.TreeNode, len(nodes))
	for i := range nodes {
		built[nodes[i].item.ID] = models.NewTreeNode(&nodes[i].item)
	}

	order := make([]int, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		order = append(order, i)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return nodes[b].depth - nodes[a].depth
	})

	for _, i := range order {
		n := &nodes[i]
		if n.item.ParentID == nil {
			continue
		}
		parent, ok := built[*n.item.ParentID]
		if !ok {
			continue
		}
		node := built[n.item.ID]
		sortChildren(node)
		parent.Children = append(parent.Children, node)
	}

	root := built[nodes[0].item.ID]
	sortChildren(root)
	return root
}

// sortChildren pins child order: ascending by external id.
func sortChildren(node *models.TreeNode) {
	slices.SortFunc(node.Children, func(a, b *models.TreeNode) int {
		return strings.Compare(a.ID, b.ID)
	})
}
