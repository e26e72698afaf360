// Package catalog serves the static product list. The data lives in
// data/catalog.yaml and is compiled into the binary; changing the catalog
// means editing that file.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogData []byte

// Product describes one catalog entry. Rice entries carry grain metrics,
// spice entries grade and admixture; unused fields are omitted.
type Product struct {
	Name        string `json:"name" yaml:"name"`
	Origin      string `json:"origin,omitempty" yaml:"origin,omitempty"`
	GrainLength string `json:"grain_length,omitempty" yaml:"grain_length,omitempty"`
	Moisture    string `json:"moisture,omitempty" yaml:"moisture,omitempty"`
	Broken      string `json:"broken,omitempty" yaml:"broken,omitempty"`
	Grade       string `json:"grade,omitempty" yaml:"grade,omitempty"`
	Admixture   string `json:"admixture,omitempty" yaml:"admixture,omitempty"`
	Image       string `json:"image" yaml:"image"`
}

// Catalog is the full product list grouped by category.
type Catalog struct {
	Rice   []Product `json:"rice" yaml:"rice"`
	Spices []Product `json:"spices" yaml:"spices"`
}

// Load parses the embedded catalog. Each call returns a fresh value, so
// callers may modify the result freely.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogData, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Rice) == 0 || len(c.Spices) == 0 {
		return nil, fmt.Errorf("catalog: rice and spices must both be non-empty")
	}
	return &c, nil
}
