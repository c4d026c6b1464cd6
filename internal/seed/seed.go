// Package seed reads import batches from YAML fixtures.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	models "yadisk/internal/domain/models/disk"
)

// Batch is one import request: every item shares UpdateDate
type Batch struct {
	UpdateDate string              `yaml:"updateDate"`
	Items      []models.ImportItem `yaml:"items"`
}

type fixture struct {
	Batches []Batch `yaml:"batches"`
}

// LoadFile reads the batches of a fixture file in order
func LoadFile(path string) ([]Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	batches, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return batches, nil
}

// Parse decodes a fixture document
func Parse(data []byte) ([]Batch, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(f.Batches) == 0 {
		return nil, fmt.Errorf("no batches")
	}
	for i, b := range f.Batches {
		if b.UpdateDate == "" {
			return nil, fmt.Errorf("batch %d: updateDate is required", i)
		}
	}
	return f.Batches, nil
}
