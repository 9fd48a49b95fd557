package redact

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Placeholder replaces every redacted span.
const Placeholder = "[REDACTED]"

// PathPlaceholder replaces the whole content of a file matched by path policy.
const PathPlaceholder = Placeholder + " (file content redacted by path policy)\n"

// DefaultPaths are the path globs redacted wholesale unless configured otherwise.
var DefaultPaths = []string{"**/.env", "**/*secrets*"}

// secretPatterns run in order. The assignment rule is last so that a shaped
// token already replaced inside an assignment is folded into one placeholder.
var secretPatterns = []*regexp.Regexp{
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Anthropic and OpenAI API keys
	regexp.MustCompile(`sk-(ant-)?[A-Za-z0-9_-]{20,}`),
	// key|password|secret|token assignments
	regexp.MustCompile(`(?i)(api[_-]?key|password|secret|token)[=:]\s*[^\s]+`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllLiteralString(result, Placeholder)
	}
	return result
}

// Value returns a copy of v with Secrets applied to every string it
// contains. Maps and slices are rebuilt; other values are returned as is.
func Value(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Value(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Value(child)
		}
		return out
	case string:
		return Secrets(t)
	default:
		return v
	}
}

// JSON converts any JSON-serializable value into its generic form
// (map[string]any, []any, string, float64, bool, nil) and redacts it.
func JSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding value for redaction: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("decoding value for redaction: %w", err)
	}
	return Value(generic), nil
}

// ShouldRedactPath checks if a slash-separated relative path matches any of
// the redaction path patterns.
func ShouldRedactPath(p string, patterns []string) bool {
	p = strings.TrimPrefix(p, "./")
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
	}
	return false
}

// Path returns PathPlaceholder when p matches a redaction path pattern and
// content unchanged otherwise. Secrets inside content are left for Value.
func Path(content, p string, redactPaths []string) string {
	if ShouldRedactPath(p, redactPaths) {
		return PathPlaceholder
	}
	return content
}
