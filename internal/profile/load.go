package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("profile not found")
	ErrNotMap   = errors.New("profile root must be a mapping")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from the file extension; JSON is the default.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes a profile document.
func Load(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Value{}, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return Value{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	v, err := Parse(data, FormatFor(path))
	if err != nil {
		return Value{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes data and requires a mapping at the root.
func Parse(data []byte, format Format) (Value, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		raw, err = decodeJSON(data)
	}
	if err != nil {
		return Value{}, err
	}
	v := FromAny(raw)
	if v.kind != Map {
		return Value{}, fmt.Errorf("%w, got %s", ErrNotMap, v.kind)
	}
	return v, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return raw, nil
}

// Field returns a top-level string field, or def when absent or not a string.
func Field(root Value, key, def string) string {
	v, ok := root.Get(key)
	if !ok {
		return def
	}
	s, ok := v.AsString()
	if !ok {
		return def
	}
	return s
}
