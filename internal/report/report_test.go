package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/archlens/internal/cache"
	"github.com/dshills/archlens/internal/log"
	"github.com/dshills/archlens/internal/providers"
)

type fakeAnalyzer struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req providers.AnalysisRequest) (providers.AnalysisResponse, error) {
	f.calls++
	f.prompts = append(f.prompts, req.Prompt)
	if f.err != nil {
		return providers.AnalysisResponse{}, f.err
	}
	return providers.AnalysisResponse{Content: f.reply, TokensUsed: 42}, nil
}

func (f *fakeAnalyzer) Name() string  { return "fake" }
func (f *fakeAnalyzer) Model() string { return "fake-model" }

var sampleSummary = map[string]any{
	"directory_structure": []any{map[string]any{"type": "directory", "path": ".", "level": 0}},
	"files": []any{map[string]any{
		"path": "main.go", "extension": ".go", "line_count": 1, "content": "if a < b && c > d {}\n",
	}},
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(sampleSummary, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Analyze this project structure and code."))
	assert.Contains(t, prompt, "5. Top 3 priorities for next steps\n\n{")
	assert.Contains(t, prompt, `"path": "main.go"`)
	assert.Contains(t, prompt, "if a < b && c > d {}")

	idx := strings.Index(prompt, "{")
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(prompt[idx:]), &decoded))
	assert.Contains(t, decoded, "files")
}

func TestBuildPrompt_Rules(t *testing.T) {
	rules := &Rules{
		Context:   "Billing service",
		Focus:     []string{"error handling", "package boundaries"},
		Questions: []string{"Is the store safe for concurrent use?"},
	}
	prompt, err := BuildPrompt(sampleSummary, rules)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Project context: Billing service\n")
	assert.Contains(t, prompt, "Pay particular attention to: error handling, package boundaries.\n")
	assert.Contains(t, prompt, "1. Is the store safe for concurrent use?\n")
	assert.Less(t, strings.Index(prompt, "Billing service"), strings.Index(prompt, `"files"`))
}

func TestBuildPrompt_Unencodable(t *testing.T) {
	_, err := BuildPrompt(map[string]any{"bad": func() {}}, nil)
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Nil(t, rules)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus: [security]\nquestions:\n  - Why two config layers?\n"), 0o644))
	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"security"}, rules.Focus)
	assert.Equal(t, []string{"Why two config layers?"}, rules.Questions)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("focus: [unclosed\n"), 0o644))
	_, err = LoadRules(bad)
	assert.Error(t, err)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReporter_Success(t *testing.T) {
	fake := &fakeAnalyzer{reply: "A small CLI."}
	r := New(fake, Options{})

	res := r.Run(context.Background(), sampleSummary)
	assert.Equal(t, "A small CLI.", res.Analysis)
	assert.False(t, res.Failed())
	assert.Equal(t, "fake-model", res.Model)
	assert.Equal(t, 42, res.TokensUsed)
	assert.Len(t, res.RunID, 36)
	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "main.go")
}

func TestReporter_FailureReturnsSentinel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&log.Config{Level: "info", Output: &buf})
	fake := &fakeAnalyzer{err: errors.New("connection refused")}

	got := New(fake, Options{Logger: logger}).Analyze(context.Background(), sampleSummary)
	assert.Equal(t, Sentinel, got)
	assert.Contains(t, buf.String(), "analysis failed")
	assert.Contains(t, buf.String(), "connection refused")
}

func TestReporter_EmptyReplyIsFailure(t *testing.T) {
	res := New(&fakeAnalyzer{reply: "  \n"}, Options{}).Run(context.Background(), sampleSummary)
	assert.Equal(t, Sentinel, res.Analysis)
	assert.True(t, res.Failed())
}

func TestReporter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	provider, err := providers.NewAnthropic(providers.AnthropicOptions{
		APIKey:   "sk-test",
		Endpoint: srv.URL,
		Timeout:  50 * time.Millisecond,
	})
	require.NoError(t, err)

	res := New(provider, Options{}).Run(context.Background(), sampleSummary)
	assert.Equal(t, Sentinel, res.Analysis)
	require.Error(t, res.Err)
}

func TestReporter_HTTPStatusFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"overloaded"}`))
	}))
	defer srv.Close()

	provider, err := providers.NewAnthropic(providers.AnthropicOptions{APIKey: "sk-test", Endpoint: srv.URL})
	require.NoError(t, err)

	res := New(provider, Options{}).Run(context.Background(), sampleSummary)
	assert.Equal(t, Sentinel, res.Analysis)
	assert.Equal(t, http.StatusInternalServerError, providers.StatusCode(res.Err))
}

func TestReporter_Cache(t *testing.T) {
	c, err := cache.New(true, t.TempDir(), time.Hour)
	require.NoError(t, err)

	fake := &fakeAnalyzer{reply: "cached analysis"}
	r := New(fake, Options{Cache: c})

	first := r.Run(context.Background(), sampleSummary)
	second := r.Run(context.Background(), sampleSummary)
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, "cached analysis", second.Analysis)
	assert.Equal(t, 1, fake.calls)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestReporter_SentinelNotCached(t *testing.T) {
	c, err := cache.New(true, t.TempDir(), time.Hour)
	require.NoError(t, err)

	fake := &fakeAnalyzer{err: errors.New("boom")}
	r := New(fake, Options{Cache: c})
	r.Run(context.Background(), sampleSummary)

	fake.err = nil
	fake.reply = "recovered"
	res := r.Run(context.Background(), sampleSummary)
	assert.Equal(t, "recovered", res.Analysis)
	assert.Equal(t, 2, fake.calls)

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "analysis")
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

	path, err := Save("result text", dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "claude_analysis_20240309_140507.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "result text", string(data))
}

func TestSave_Sentinel(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(Sentinel, dir, time.Now())
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Sentinel, string(data))
}

func TestPath_DefaultDir(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, filepath.Join("analysis", "claude_analysis_20251231_235959.md"), Path("", now, ".md"))
}
