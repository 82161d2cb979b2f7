package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"ai-governance-controls/internal/profile"
)

const schemaURL = "mem://catalog.schema.json"

// documentSchema only fixes the outer shape. Per-control rules are checked
// by Validate so that every problem is reported, not just the first.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "version": {"type": ["string", "number"]},
    "controls": {
      "type": ["array", "null"],
      "items": {"type": "object"}
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func documentShape() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(documentSchema)); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// checkShape validates a YAML-decoded document against the outer schema.
func checkShape(doc any) error {
	s, err := documentShape()
	if err != nil {
		return err
	}
	normalized, err := toJSON(doc)
	if err != nil {
		return err
	}
	return s.Validate(normalized)
}

// toJSON converts YAML decoder output into the value space the schema
// validator expects.
func toJSON(doc any) (any, error) {
	raw, err := json.Marshal(profile.FromAny(doc))
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
