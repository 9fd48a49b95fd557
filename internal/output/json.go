package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs the full document as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

func (j *JSONWriter) Extension() string { return ".json" }
