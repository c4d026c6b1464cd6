package disk

// TreeNode is an item with its nested descendants. Children is nil for
// FILE nodes (rendered as null) and never nil for FOLDER nodes.
type TreeNode struct {
	ID       string      `json:"id"`
	URL      *string     `json:"url"`
	ParentID *string     `json:"parentId"`
	Size     int64       `json:"size"`
	Date     Timestamp   `json:"date"`
	Type     ItemType    `json:"type"`
	Children []*TreeNode `json:"children"`
}

// NewTreeNode converts a stored item into a detached tree node.
func NewTreeNode(item *Item) *TreeNode {
	node := &TreeNode{
		ID:       item.ExternalID,
		URL:      item.URL,
		ParentID: item.ParentExternalID,
		Size:     item.Size,
		Date:     Timestamp(item.UpdatedAt),
		Type:     item.Type,
	}
	if item.IsFolder() {
		node.Children = []*TreeNode{}
	}
	return node
}

// HistoryNode is the wire form of one History entry.
type HistoryNode struct {
	ID       string    `json:"id"`
	URL      *string   `json:"url"`
	ParentID *string   `json:"parentId"`
	Size     int64     `json:"size"`
	Date     Timestamp `json:"date"`
	Type     ItemType  `json:"type"`
}

// NewHistoryNode converts a stored History entry into its wire form.
func NewHistoryNode(entry *HistoryEntry) *HistoryNode {
	return &HistoryNode{
		ID:       entry.ExternalID,
		URL:      entry.URL,
		ParentID: entry.ParentExternalID,
		Size:     entry.Size,
		Date:     Timestamp(entry.UpdatedAt),
		Type:     ItemTypeFile,
	}
}
