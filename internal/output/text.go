package output

import "io"

// TextWriter writes the analysis text alone.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, doc *Document) error {
	ew := &errWriter{w: w}
	ew.print(doc.Analysis)
	return ew.err
}

func (t *TextWriter) Extension() string { return ".txt" }
