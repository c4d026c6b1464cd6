package disk

import (
	"context"
	"errors"
	"fmt"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
	diskRepo "yadisk/internal/domain/repositories/disk"
)

// findItem returns the stored item or nil when it does not exist.
func findItem(ctx context.Context, repo diskRepo.ItemRepository, id string) (*models.Item, error) {
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// ancestorChain walks parent pointers upward starting at startID (inclusive)
// and returns the ids of every folder on the way to the root.
func ancestorChain(ctx context.Context, repo diskRepo.ItemRepository, startID string) ([]string, error) {
	var chain []string
	visited := make(map[string]bool)

	currentID := startID
	for {
		if visited[currentID] {
			return nil, fmt.Errorf("parent chain of %s loops at %s", startID, currentID)
		}
		visited[currentID] = true

		item, err := findItem(ctx, repo, currentID)
		if err != nil {
			return nil, fmt.Errorf("walk ancestors: %w", err)
		}
		if item == nil {
			break
		}
		chain = append(chain, item.ID)

		if item.ParentID == nil {
			break
		}
		currentID = *item.ParentID
	}

	return chain, nil
}

// subtreeNode is one entry of the flat descendant closure.
type subtreeNode struct {
	item  models.Item
	depth int
}

// collectSubtree returns root followed by every descendant in breadth-first
// order, following the parent index downward and recording depth.
func collectSubtree(ctx context.Context, repo diskRepo.ItemRepository, root *models.Item) ([]subtreeNode, error) {
	nodes := []subtreeNode{{item: *root, depth: 0}}
	seen := map[string]bool{root.ID: true}

	for i := 0; i < len(nodes); i++ {
		if !nodes[i].item.IsFolder() {
			continue
		}

		children, err := repo.ListChildren(ctx, nodes[i].item.ID)
		if err != nil {
			return nil, fmt.Errorf("list children of %s: %w", nodes[i].item.ExternalID, err)
		}
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			nodes = append(nodes, subtreeNode{item: child, depth: nodes[i].depth + 1})
		}
	}

	return nodes, nil
}
