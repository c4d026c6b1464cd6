package disk

import (
	"context"
	"errors"
	"testing"

	"yadisk/internal/domain"
)

func TestDeleteNode_RemovesSubtree(t *testing.T) {
	env := newTestEnv(t)
	env.mustImport(t, date1,
		folder("root", ""),
		folder("A", "root"),
		folder("A1", "A"),
		file("f1", "A1", 10),
		file("f2", "A", 20),
		file("keep", "root", 5),
	)

	if err := env.deletes.DeleteNode(context.Background(), "A", date2); err != nil {
		t.Fatalf("DeleteNode() error = %v", err)
	}

	for _, id := range []string{"A", "A1", "f1", "f2"} {
		if _, err := env.trees.GetNode(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetNode(%q) error = %v, want ErrNotFound", id, err)
		}
	}

	root := env.mustGet(t, "root")
	if root.Size != 5 {
		t.Errorf("size(root) = %d, want 5", root.Size)
	}
	if !root.Date.Time().Equal(date2) {
		t.Errorf("date(root) = %v, want %v", root.Date.Time(), date2)
	}
	if len(root.Children) != 1 || root.Children[0].ID != "keep" {
		t.Errorf("root children = %+v, want [keep]", root.Children)
	}
	checkSizes(t, root)
}

func TestDeleteNode_File(t *testing.T) {
	env := newTestEnv(t)
	env.mustImport(t, date1, folder("A", ""), folder("B", "A"), file("f", "B", 7), file("g", "B", 3))

	if err := env.deletes.DeleteNode(context.Background(), "f", date2); err != nil {
		t.Fatalf("DeleteNode() error = %v", err)
	}

	root := env.mustGet(t, "A")
	if root.Size != 3 {
		t.Errorf("size(A) = %d, want 3", root.Size)
	}
	checkSizes(t, root)
}

func TestDeleteNode_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.mustImport(t, date1, folder("A", ""))

	err := env.deletes.DeleteNode(context.Background(), "missing", date2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteNode() error = %v, want ErrNotFound", err)
	}
	if root := env.mustGet(t, "A"); !root.Date.Time().Equal(date1) {
		t.Errorf("date(A) changed to %v", root.Date.Time())
	}
}

func TestDeleteNode_IDCanBeReused(t *testing.T) {
	env := newTestEnv(t)
	env.mustImport(t, date1, folder("A", ""), file("f", "A", 4))
	if err := env.deletes.DeleteNode(context.Background(), "f", date2); err != nil {
		t.Fatalf("DeleteNode() error = %v", err)
	}

	// After deletion the id is free; it may even come back with a new type.
	env.mustImport(t, date3, folder("f", "A"))

	root := env.mustGet(t, "A")
	if root.Size != 0 {
		t.Errorf("size(A) = %d, want 0", root.Size)
	}
	if f := findChild(root, "f"); f == nil || f.Type != "FOLDER" {
		t.Errorf("f = %+v, want FOLDER", f)
	}
}
