package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	AnthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"

	DefaultModel     = "claude-3-opus-20240229"
	DefaultMaxTokens = 4000
	DefaultTimeout   = 30 * time.Second
)

// AnthropicOptions configures an Anthropic provider.
type AnthropicOptions struct {
	APIKey    string
	Model     string
	MaxTokens int
	Endpoint  string
	Timeout   time.Duration
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// Anthropic implements the Analyzer interface for Anthropic's API.
type Anthropic struct {
	apiKey    string
	model     string
	maxTokens int
	endpoint  string
	client    *http.Client
}

// NewAnthropic creates a new Anthropic provider.
func NewAnthropic(opts AnthropicOptions) (*Anthropic, error) {
	if opts.APIKey == "" {
		return nil, &authError{message: "API key is empty"}
	}
	a := &Anthropic{
		apiKey:    opts.APIKey,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		endpoint:  opts.Endpoint,
		client:    opts.Client,
	}
	if a.model == "" {
		a.model = DefaultModel
	}
	if a.maxTokens <= 0 {
		a.maxTokens = DefaultMaxTokens
	}
	if a.endpoint == "" {
		a.endpoint = AnthropicAPIURL
	}
	if a.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		a.client = &http.Client{Timeout: timeout}
	}
	return a, nil
}

func (a *Anthropic) Name() string  { return "anthropic" }
func (a *Anthropic) Model() string { return a.model }

func (a *Anthropic) Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = a.maxTokens
	}

	body := anthropicRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    req.SystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return AnalysisResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return AnalysisResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return AnalysisResponse{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return AnalysisResponse{}, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusTooManyRequests:
		return AnalysisResponse{}, &rateLimitError{}
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return AnalysisResponse{}, &authError{message: string(respBody)}
	case httpResp.StatusCode < 200 || httpResp.StatusCode > 299:
		return AnalysisResponse{}, &statusError{code: httpResp.StatusCode, body: string(respBody)}
	}

	var result anthropicResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return AnalysisResponse{}, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Content) == 0 {
		return AnalysisResponse{}, errors.New("response has no content blocks")
	}

	var content string
	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			content += block.Text
		}
	}

	return AnalysisResponse{
		Content:    content,
		TokensUsed: result.Usage.InputTokens + result.Usage.OutputTokens,
	}, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
	Usage   anthropicUsage   `json:"usage"`
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
