package report

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules extends the analysis prompt. It is loaded from a YAML file:
//
//	context: Internal billing service, Go 1.22, deployed on Kubernetes.
//	focus: [error handling, package boundaries]
//	questions:
//	  - Is the storage layer safe for concurrent use?
type Rules struct {
	Context   string   `yaml:"context"`
	Focus     []string `yaml:"focus"`
	Questions []string `yaml:"questions"`
}

// LoadRules loads a rules file from disk. Returns nil Rules and nil error if path is empty.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return &rules, nil
}

func (r *Rules) promptSection() string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	if c := strings.TrimSpace(r.Context); c != "" {
		fmt.Fprintf(&b, "Project context: %s\n", c)
	}
	if len(r.Focus) > 0 {
		fmt.Fprintf(&b, "Pay particular attention to: %s.\n", strings.Join(r.Focus, ", "))
	}
	if len(r.Questions) > 0 {
		b.WriteString("Also answer these questions:\n")
		for i, q := range r.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(q))
		}
	}
	return b.String()
}
