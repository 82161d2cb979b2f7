package risk

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Category is one Annex III high-risk area.
type Category struct {
	Key      string   `yaml:"key" json:"key"`
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

type Obligations struct {
	Unacceptable []string `yaml:"unacceptable"`
	High         []string `yaml:"high"`
	Limited      []string `yaml:"limited"`
	Minimal      []string `yaml:"minimal"`
}

// Tables drive classification. They are built once and never mutated.
type Tables struct {
	Unacceptable []string    `yaml:"unacceptable"`
	Categories   []Category  `yaml:"categories"`
	Limited      []string    `yaml:"limited"`
	Obligations  Obligations `yaml:"obligations"`
}

// DefaultTables returns the built-in keyword tables.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("risk: embedded tables: %v", err))
	}
	return t
}

// LoadTables reads replacement tables from a YAML file.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read risk tables: %w", err)
	}
	return ParseTables(data)
}

func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse risk tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.Categories) == 0 {
		return errors.New("risk tables: no categories")
	}
	seen := map[string]bool{}
	for _, c := range t.Categories {
		if c.Key == "" {
			return errors.New("risk tables: category without key")
		}
		if seen[c.Key] {
			return fmt.Errorf("risk tables: duplicate category %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}
