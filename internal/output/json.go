package output

import (
	"encoding/json"
	"io"
	"os"
)

// WriteJSON encodes v with two-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteEvaluationJSON(w io.Writer, e Evaluation) error {
	return WriteJSON(w, e.document())
}

func WriteClassificationJSON(w io.Writer, c Classification) error {
	return WriteJSON(w, c.document())
}

// ToFile renders into the file at path, replacing it.
func ToFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
