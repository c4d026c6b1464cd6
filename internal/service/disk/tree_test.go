package disk

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
)

func TestGetNode_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.trees.GetNode(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetNode() error = %v, want ErrNotFound", err)
	}
}

func TestGetNode_ChildrenShape(t *testing.T) {
	env := newTestEnv(t)
	env.mustImport(t, date1, folder("A", ""), folder("empty", "A"), file("f", "A", 2))

	root := env.mustGet(t, "A")
	empty := findChild(root, "empty")
	f := findChild(root, "f")

	if empty.Children == nil {
		t.Error("empty folder children = nil, want empty slice")
	}
	if f.Children != nil {
		t.Errorf("file children = %v, want nil", f.Children)
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["children"]; !ok || v != nil {
		t.Errorf("file children JSON = %v, want null", v)
	}
	if decoded["parentId"] != "A" {
		t.Errorf("parentId = %v, want A", decoded["parentId"])
	}
	if decoded["date"] != "2022-02-01T12:00:00.000Z" {
		t.Errorf("date = %v", decoded["date"])
	}
}

func TestGetNode_DeepTreeOrdering(t *testing.T) {
	env := newTestEnv(t)
	env.mustImport(t, date1,
		folder("root", ""),
		folder("z", "root"),
		folder("m", "root"),
		file("b", "z", 1),
		file("a", "z", 2),
		folder("deep", "m"),
		file("leaf", "deep", 5),
	)

	root := env.mustGet(t, "root")
	wantOrder := map[string][]string{
		"root": {"m", "z"},
		"z":    {"a", "b"},
		"m":    {"deep"},
		"deep": {"leaf"},
	}
	for id, want := range wantOrder {
		node := findChild(root, id)
		if node == nil {
			t.Fatalf("node %s missing", id)
		}
		if len(node.Children) != len(want) {
			t.Fatalf("len(children(%s)) = %d, want %d", id, len(node.Children), len(want))
		}
		for i, child := range node.Children {
			if child.ID != want[i] {
				t.Errorf("children(%s)[%d] = %s, want %s", id, i, child.ID, want[i])
			}
		}
	}
	if root.Size != 8 {
		t.Errorf("size(root) = %d, want 8", root.Size)
	}
	checkSizes(t, root)
}

func TestAssembleTree(t *testing.T) {
	rootID := "r"
	folderID := "d"
	nodes := []subtreeNode{
		{item: models.Item{ID: rootID, ExternalID: "r", Type: models.ItemTypeFolder}, depth: 0},
		{item: models.Item{ID: "y", ExternalID: "y", ParentID: &rootID, Type: models.ItemTypeFile, Size: 1}, depth: 1},
		{item: models.Item{ID: folderID, ExternalID: "d", ParentID: &rootID, Type: models.ItemTypeFolder, Size: 3}, depth: 1},
		{item: models.Item{ID: "x", ExternalID: "x", ParentID: &folderID, Type: models.ItemTypeFile, Size: 3}, depth: 2},
	}

	tree := assembleTree(nodes)
	if tree.ID != "r" {
		t.Fatalf("root = %s, want r", tree.ID)
	}
	if len(tree.Children) != 2 || tree.Children[0].ID != "d" || tree.Children[1].ID != "y" {
		t.Fatalf("root children not sorted: %+v", tree.Children)
	}
	if len(tree.Children[0].Children) != 1 || tree.Children[0].Children[0].ID != "x" {
		t.Errorf("folder d not fully populated")
	}

	if assembleTree(nil) != nil {
		t.Error("assembleTree(nil) should return nil")
	}
}
