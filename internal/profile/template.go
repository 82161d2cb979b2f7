package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

//go:embed templates/template.json
var templateJSON []byte

//go:embed templates/field_guide.md
var fieldGuide string

// Template returns the blank profile document written by `init`.
func Template() []byte {
	return append([]byte(nil), templateJSON...)
}

// FieldGuide describes which profile fields feed which controls.
func FieldGuide() string {
	return fieldGuide
}

// WriteTemplate writes the blank profile to path. An existing file is left
// untouched unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite %s", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, templateJSON, 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
