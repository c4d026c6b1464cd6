package disk

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	models "yadisk/internal/domain/models/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/repository/memory"
)

var (
	date1 = time.Date(2022, 2, 1, 12, 0, 0, 0, time.UTC)
	date2 = time.Date(2022, 2, 2, 12, 0, 0, 0, time.UTC)
	date3 = time.Date(2022, 2, 3, 12, 0, 0, 0, time.UTC)
)

type testEnv struct {
	imports diskSvc.ImportService
	trees   diskSvc.TreeService
	deletes diskSvc.DeleteService
	history diskSvc.HistoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	itemRepo := memory.NewItemRepository(store)
	historyRepo := memory.NewHistoryRepository(store)
	txManager := memory.NewTransactionManager(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ns := models.DefaultNamespace

	return &testEnv{
		imports: NewImportService(itemRepo, historyRepo, txManager, ns, logger),
		trees:   NewTreeService(itemRepo, txManager, ns, logger),
		deletes: NewDeleteService(itemRepo, txManager, ns, logger),
		history: NewHistoryService(itemRepo, historyRepo, txManager, ns),
	}
}

func (e *testEnv) mustImport(t *testing.T, date time.Time, items ...models.ImportItem) {
	t.Helper()
	req := &diskSvc.ImportRequest{UpdateDate: date, Items: items}
	if err := e.imports.Import(context.Background(), req); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
}

func (e *testEnv) mustGet(t *testing.T, id string) *models.TreeNode {
	t.Helper()
	node, err := e.trees.GetNode(context.Background(), id)
	if err != nil {
		t.Fatalf("GetNode(%q) error = %v", id, err)
	}
	return node
}

func strPtr(s string) *string { return &s }

func sizePtr(n int64) *int64 { return &n }

func folder(id, parent string) models.ImportItem {
	item := models.ImportItem{ID: id, Type: "FOLDER"}
	if parent != "" {
		item.ParentID = strPtr(parent)
	}
	return item
}

func file(id, parent string, size int64) models.ImportItem {
	item := models.ImportItem{ID: id, Type: "FILE", URL: strPtr("/file/" + id), Size: sizePtr(size)}
	if parent != "" {
		item.ParentID = strPtr(parent)
	}
	return item
}

// checkSizes verifies that every folder in the tree is the sum of its files
// and returns the size of node.
func checkSizes(t *testing.T, node *models.TreeNode) int64 {
	t.Helper()
	if node.Type == models.ItemTypeFile {
		return node.Size
	}
	var sum int64
	for _, child := range node.Children {
		sum += checkSizes(t, child)
	}
	if node.Size != sum {
		t.Errorf("folder %s size = %d, files beneath sum to %d", node.ID, node.Size, sum)
	}
	return node.Size
}

func findChild(node *models.TreeNode, id string) *models.TreeNode {
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := findChild(child, id); found != nil {
			return found
		}
	}
	return nil
}
