package report

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/archlens/internal/cache"
	"github.com/dshills/archlens/internal/log"
	"github.com/dshills/archlens/internal/providers"
)

// Sentinel replaces the analysis whenever the API call fails.
const Sentinel = "Error: Could not get analysis from Claude API"

// Options configures a Reporter.
type Options struct {
	Rules *Rules
	// Cache is consulted before and filled after each successful call.
	Cache  *cache.Cache
	Logger *slog.Logger
}

// Result is one analysis attempt.
type Result struct {
	RunID      string
	Provider   string
	Model      string
	Analysis   string
	Cached     bool
	TokensUsed int
	Duration   time.Duration
	// Err is the cause when Analysis is the Sentinel.
	Err error
}

// Failed reports whether the analysis is the Sentinel.
func (r Result) Failed() bool { return r.Err != nil }

// Reporter obtains analyses from a provider.
type Reporter struct {
	provider providers.Analyzer
	rules    *Rules
	cache    *cache.Cache
	logger   *slog.Logger
}

// New creates a Reporter for provider.
func New(provider providers.Analyzer, opts Options) *Reporter {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Reporter{
		provider: provider,
		rules:    opts.Rules,
		cache:    opts.Cache,
		logger:   log.WithComponent(logger, "report"),
	}
}

// Analyze returns the provider's analysis of summary, or Sentinel on any
// failure.
func (r *Reporter) Analyze(ctx context.Context, summary any) string {
	return r.Run(ctx, summary).Analysis
}

// Run performs one analysis and reports how it went. It never returns an
// empty Analysis.
func (r *Reporter) Run(ctx context.Context, summary any) Result {
	res := Result{
		RunID:    uuid.NewString(),
		Provider: r.provider.Name(),
		Model:    r.provider.Model(),
	}
	logger := r.logger.With(
		slog.String(log.RunIDKey, res.RunID),
		slog.String(log.ProviderKey, res.Provider),
		slog.String(log.ModelKey, res.Model),
	)
	start := time.Now()

	prompt, err := BuildPrompt(summary, r.rules)
	if err != nil {
		return r.fail(logger, res, start, err)
	}

	key := cache.Key(res.Model, prompt)
	if r.cache != nil {
		if entry, ok := r.cache.Get(key); ok {
			logger.Info("using cached analysis")
			res.Analysis = entry.Analysis
			res.Cached = true
			res.Duration = time.Since(start)
			return res
		}
	}

	logger.Info("requesting analysis", slog.Int("prompt_bytes", len(prompt)))
	resp, err := r.provider.Analyze(ctx, providers.AnalysisRequest{Prompt: prompt})
	if err != nil {
		return r.fail(logger, res, start, err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return r.fail(logger, res, start, errors.New("empty analysis"))
	}

	res.Analysis = resp.Content
	res.TokensUsed = resp.TokensUsed
	res.Duration = time.Since(start)
	logger.Info("analysis received", slog.Duration(log.DurationKey, res.Duration), slog.Int("tokens", res.TokensUsed))

	if r.cache != nil {
		if err := r.cache.Put(key, res.Model, res.Analysis); err != nil {
			logger.Warn("cache write failed", log.Error(err))
		}
	}
	return res
}

func (r *Reporter) fail(logger *slog.Logger, res Result, start time.Time, err error) Result {
	res.Analysis = Sentinel
	res.Err = err
	res.Duration = time.Since(start)

	attrs := []any{log.Error(err), slog.Duration(log.DurationKey, res.Duration)}
	switch {
	case providers.IsAuthError(err):
		attrs = append(attrs, slog.String("cause", "authentication"))
	case providers.IsRateLimit(err):
		attrs = append(attrs, slog.String("cause", "rate limited"))
	case providers.StatusCode(err) != 0:
		attrs = append(attrs, slog.Int("status", providers.StatusCode(err)))
	}
	logger.Error("analysis failed", attrs...)
	return res
}
