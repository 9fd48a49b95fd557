package report

import (
	"strings"

	"github.com/dshills/archlens/internal/summarize"
)

const instructions = `Analyze this project structure and code. For large files, I've included first 100 and last 50 lines.

Key points to analyze:
1. Project purpose and main features
2. Major components and their interactions
3. Architectural issues or mismatches
4. Missing features or improvements needed
5. Top 3 priorities for next steps

`

// BuildPrompt returns the analysis instructions followed by summary encoded
// as indented JSON. Rules, when given, are inserted before the JSON.
func BuildPrompt(summary any, rules *Rules) (string, error) {
	data, err := summarize.Marshal(summary)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(instructions)
	if section := rules.promptSection(); section != "" {
		b.WriteString(section)
		b.WriteString("\n")
	}
	b.Write(data)
	return b.String(), nil
}
