package providers

import (
	"context"
	"fmt"
)

// AnalysisRequest contains the data sent to an LLM for analysis.
type AnalysisRequest struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
}

// AnalysisResponse contains the raw textual reply from an LLM.
type AnalysisResponse struct {
	Content    string
	TokensUsed int
}

// Analyzer is the provider abstraction interface.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error)
	Name() string
	Model() string
}

// New creates a provider by name.
func New(provider string, opts AnthropicOptions) (Analyzer, error) {
	switch provider {
	case "", "anthropic", "claude":
		return NewAnthropic(opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
