// Package catalog loads governance control catalogs and validates their
// structure.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"ai-governance-controls/internal/model"
)

var ErrNotFound = errors.New("controls file not found")

// Catalog is a decoded `controls:` document.
type Catalog struct {
	Version  string          `yaml:"version,omitempty" json:"version,omitempty"`
	Controls []model.Control `yaml:"controls" json:"controls"`
}

// Load reads a catalog for evaluation. It does not validate it; use
// ValidateFile for that.
func Load(path string) (*Catalog, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse controls %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ByID returns the control with id, if present.
func (c *Catalog) ByID(id string) (model.Control, bool) {
	for _, ctl := range c.Controls {
		if ctl.ID == id {
			return ctl, true
		}
	}
	return model.Control{}, false
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read controls %s: %w", path, err)
	}
	return data, nil
}
