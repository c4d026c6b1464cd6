package disk

import (
	"fmt"
	"time"
)

// ItemType is the closed set of node kinds in the registry.
type ItemType string

const (
	ItemTypeFolder ItemType = "FOLDER"
	ItemTypeFile   ItemType = "FILE"
)

// ParseItemType converts a wire value into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeFolder, ItemTypeFile:
		return ItemType(s), nil
	default:
		return "", fmt.Errorf("unknown item type %q", s)
	}
}

func (t ItemType) String() string { return string(t) }

// Item is a stored node. ID is derived from ExternalID (see DeriveID);
// ParentID references the derived id of a FOLDER.
type Item struct {
	ID               string    `json:"-" db:"id"`
	ExternalID       string    `json:"id" db:"external_id"`
	ParentID         *string   `json:"-" db:"parent_id"` // NULL = root level
	ParentExternalID *string   `json:"parentId" db:"parent_external_id"`
	Type             ItemType  `json:"type" db:"item_type"`
	Size             int64     `json:"size" db:"size"` // derived for FOLDER
	URL              *string   `json:"url" db:"url"`   // FILE only
	UpdatedAt        time.Time `json:"date" db:"updated_at"`
}

// IsFolder reports whether the item is a FOLDER.
func (i *Item) IsFolder() bool { return i.Type == ItemTypeFolder }

// HistoryEntry is one append-only snapshot of a FILE, keyed by (ItemID, UpdatedAt).
type HistoryEntry struct {
	ItemID           string    `db:"item_id"`
	ExternalID       string    `db:"external_id"`
	URL              *string   `db:"url"`
	ParentID         *string   `db:"parent_id"`
	ParentExternalID *string   `db:"parent_external_id"`
	Size             int64     `db:"size"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// ImportItem is one descriptor of an import batch as received from a client.
// Pointer fields are nil when the key is absent or JSON null.
type ImportItem struct {
	ID       string  `json:"id" yaml:"id"`
	Type     string  `json:"type" yaml:"type"`
	ParentID *string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	URL      *string `json:"url,omitempty" yaml:"url,omitempty"`
	Size     *int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// HasParent reports whether the descriptor names a parent.
func (i *ImportItem) HasParent() bool {
	return i.ParentID != nil && *i.ParentID != ""
}
