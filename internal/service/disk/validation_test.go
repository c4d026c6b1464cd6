package disk

import (
	"errors"
	"strings"
	"testing"

	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
)

func TestValidateItem(t *testing.T) {
	storedFolder := &models.Item{ID: "f", ExternalID: "f", Type: models.ItemTypeFolder}
	storedFile := &models.Item{ID: "x", ExternalID: "x", Type: models.ItemTypeFile, Size: 1}

	tests := []struct {
		name     string
		item     models.ImportItem
		existing *models.Item
		parent   *models.Item
		wantType models.ItemType
		wantErr  bool
	}{
		{
			name:     "root folder",
			item:     folder("a", ""),
			wantType: models.ItemTypeFolder,
		},
		{
			name:     "file under folder",
			item:     file("b", "f", 10),
			parent:   storedFolder,
			wantType: models.ItemTypeFile,
		},
		{
			name:    "missing id",
			item:    models.ImportItem{Type: "FOLDER"},
			wantErr: true,
		},
		{
			name:    "missing type",
			item:    models.ImportItem{ID: "a"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			item:    models.ImportItem{ID: "a", Type: "LINK"},
			wantErr: true,
		},
		{
			name:     "type change folder to file",
			item:     file("f", "", 1),
			existing: storedFolder,
			wantErr:  true,
		},
		{
			name:     "same type re-import",
			item:     file("x", "", 7),
			existing: storedFile,
			wantType: models.ItemTypeFile,
		},
		{
			name:    "unknown parent",
			item:    file("b", "nope", 10),
			wantErr: true,
		},
		{
			name:    "parent is a file",
			item:    file("b", "x", 10),
			parent:  storedFile,
			wantErr: true,
		},
		{
			name:    "folder with url",
			item:    models.ImportItem{ID: "a", Type: "FOLDER", URL: strPtr("/a")},
			wantErr: true,
		},
		{
			name:    "folder with size",
			item:    models.ImportItem{ID: "a", Type: "FOLDER", Size: sizePtr(3)},
			wantErr: true,
		},
		{
			name:     "empty parent id means root",
			item:     models.ImportItem{ID: "a", Type: "FOLDER", ParentID: strPtr("")},
			wantType: models.ItemTypeFolder,
		},
		{
			name:    "file without url",
			item:    models.ImportItem{ID: "b", Type: "FILE", Size: sizePtr(1)},
			wantErr: true,
		},
		{
			name:    "file with empty url",
			item:    models.ImportItem{ID: "b", Type: "FILE", URL: strPtr(""), Size: sizePtr(1)},
			wantErr: true,
		},
		{
			name:    "file without size",
			item:    models.ImportItem{ID: "b", Type: "FILE", URL: strPtr("/b")},
			wantErr: true,
		},
		{
			name:    "file with zero size",
			item:    models.ImportItem{ID: "b", Type: "FILE", URL: strPtr("/b"), Size: sizePtr(0)},
			wantErr: true,
		},
		{
			name:    "file with negative size",
			item:    models.ImportItem{ID: "b", Type: "FILE", URL: strPtr("/b"), Size: sizePtr(-4)},
			wantErr: true,
		},
		{
			name:     "url of 255 characters",
			item:     models.ImportItem{ID: "b", Type: "FILE", URL: strPtr(strings.Repeat("u", 255)), Size: sizePtr(1)},
			wantType: models.ItemTypeFile,
		},
		{
			name:    "url of 256 characters",
			item:    models.ImportItem{ID: "b", Type: "FILE", URL: strPtr(strings.Repeat("u", 256)), Size: sizePtr(1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateItem(&tt.item, tt.existing, tt.parent)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("validateItem() expected error, got type %q", got)
				}
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("validateItem() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateItem() unexpected error = %v", err)
			}
			if got != tt.wantType {
				t.Errorf("validateItem() type = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestValidateItem_RuleOrder(t *testing.T) {
	// A type change is reported before the field rules of the new type.
	storedFolder := &models.Item{ID: "f", ExternalID: "f", Type: models.ItemTypeFolder}
	item := models.ImportItem{ID: "f", Type: "FILE"}

	_, err := validateItem(&item, storedFolder, nil)
	if err == nil {
		t.Fatal("validateItem() expected error")
	}
	if !strings.Contains(err.Error(), "type cannot change") {
		t.Errorf("validateItem() error = %q, want type change", err.Error())
	}
}

func TestValidateStructure_SkipsStoreRules(t *testing.T) {
	item := file("b", "unknown-parent", 10)
	if _, err := validateStructure(&item); err != nil {
		t.Errorf("validateStructure() error = %v, want nil", err)
	}
}
