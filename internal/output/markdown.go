package output

import (
	"io"
	"path/filepath"
	"strings"
	"time"
)

// MarkdownWriter writes a heading, a metadata table and the analysis.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, doc *Document) error {
	ew := &errWriter{w: w}

	name := filepath.Base(doc.Project)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = doc.Project
	}
	ew.printf("# Architecture analysis: %s\n\n", name)

	ew.println("| | |")
	ew.println("|---|---|")
	ew.printf("| Project | `%s` |\n", mdCell(doc.Project))
	if doc.Branch != "" {
		ew.printf("| Branch | `%s` |\n", mdCell(doc.Branch))
	}
	if doc.Head != "" {
		ew.printf("| Commit | `%s` |\n", shortHash(doc.Head))
	}
	ew.printf("| Generated | %s |\n", doc.GeneratedAt.Format(time.RFC3339))
	ew.printf("| Model | %s |\n", mdCell(doc.Model))
	ew.printf("| Files analyzed | %d |\n", doc.FilesAnalyzed)
	if doc.Truncated {
		ew.println("| Truncated | yes |")
	}
	if doc.EstimatedTokens > 0 {
		ew.printf("| Estimated tokens | %d |\n", doc.EstimatedTokens)
	}
	if doc.Cached {
		ew.println("| Cached | yes |")
	}
	ew.printf("| Run | %s |\n", doc.RunID)
	ew.println("")

	if doc.Error != "" {
		ew.printf("> **Analysis failed:** %s\n\n", mdCell(doc.Error))
	}

	ew.print(doc.Analysis)
	if !strings.HasSuffix(doc.Analysis, "\n") {
		ew.println("")
	}
	return ew.err
}

func (m *MarkdownWriter) Extension() string { return ".md" }

func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
