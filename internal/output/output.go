package output

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

// Document is everything known about one analysis run.
type Document struct {
	RunID           string    `json:"runId"`
	Project         string    `json:"project"`
	Branch          string    `json:"branch,omitempty"`
	Head            string    `json:"head,omitempty"`
	GeneratedAt     time.Time `json:"generatedAt"`
	Provider        string    `json:"provider"`
	Model           string    `json:"model"`
	FilesAnalyzed   int       `json:"filesAnalyzed"`
	Truncated       bool      `json:"truncated"`
	EstimatedTokens int       `json:"estimatedTokens,omitempty"`
	TokensUsed      int       `json:"tokensUsed,omitempty"`
	Cached          bool      `json:"cached,omitempty"`
	SummaryPath     string    `json:"summaryPath,omitempty"`
	Analysis        string    `json:"analysis"`
	Error           string    `json:"error,omitempty"`
}

// Writer writes a document in a specific format.
type Writer interface {
	Write(w io.Writer, doc *Document) error
	// Extension is the file suffix for the format, with its dot.
	Extension() string
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Render returns doc rendered by w.
func Render(w Writer, doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
