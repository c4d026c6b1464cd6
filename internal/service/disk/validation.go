package disk

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"yadisk/internal/config"
	"yadisk/internal/domain"
	models "yadisk/internal/domain/models/disk"
)

// validatePresence checks that id and type are present and type is known.
func validatePresence(item *models.ImportItem) (models.ItemType, error) {
	err := validation.ValidateStruct(item,
		validation.Field(&item.ID, validation.Required),
		validation.Field(&item.Type, validation.Required),
	)
	if err != nil {
		return "", invalidItem(item, err)
	}

	itemType, err := models.ParseItemType(item.Type)
	if err != nil {
		return "", invalidItem(item, err)
	}
	return itemType, nil
}

// validateFields applies the FOLDER/FILE field constraints.
func validateFields(item *models.ImportItem, itemType models.ItemType) error {
	var err error
	switch itemType {
	case models.ItemTypeFolder:
		err = validation.ValidateStruct(item,
			validation.Field(&item.URL, validation.Nil.Error("must be absent for FOLDER")),
			validation.Field(&item.Size, validation.Nil.Error("must be absent for FOLDER")),
		)
	case models.ItemTypeFile:
		err = validation.ValidateStruct(item,
			validation.Field(&item.URL,
				validation.Required,
				validation.Length(1, config.MaxURLLength),
			),
			validation.Field(&item.Size,
				validation.Required,
				validation.Min(int64(1)),
			),
		)
	}
	if err != nil {
		return invalidItem(item, err)
	}
	return nil
}

// validateStructure applies every rule that needs no stored state.
// Import runs it over the whole batch before opening a transaction.
func validateStructure(item *models.ImportItem) (models.ItemType, error) {
	itemType, err := validatePresence(item)
	if err != nil {
		return "", err
	}
	if err := validateFields(item, itemType); err != nil {
		return "", err
	}
	return itemType, nil
}

// validateAgainstStore applies the rules that depend on stored state.
// existing and parent are nil when the store has no such item.
func validateAgainstStore(item *models.ImportItem, itemType models.ItemType, existing, parent *models.Item) error {
	if existing != nil && existing.Type != itemType {
		return invalidItem(item, fmt.Errorf("type cannot change from %s to %s", existing.Type, itemType))
	}

	if item.HasParent() {
		if parent == nil {
			return invalidItem(item, fmt.Errorf("parent %q does not exist", *item.ParentID))
		}
		if !parent.IsFolder() {
			return invalidItem(item, fmt.Errorf("parent %q is not a FOLDER", *item.ParentID))
		}
	}

	return nil
}

// validateItem runs every rule for one descriptor in order; the first
// failure wins.
func validateItem(item *models.ImportItem, existing, parent *models.Item) (models.ItemType, error) {
	itemType, err := validatePresence(item)
	if err != nil {
		return "", err
	}
	if err := validateAgainstStore(item, itemType, existing, parent); err != nil {
		return "", err
	}
	if err := validateFields(item, itemType); err != nil {
		return "", err
	}
	return itemType, nil
}

func invalidItem(item *models.ImportItem, err error) error {
	if item.ID == "" {
		return domain.NewValidation(fmt.Sprintf("invalid item: %v", err))
	}
	return domain.NewValidation(fmt.Sprintf("invalid item %q: %v", item.ID, err))
}
