package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points the user config dir and working directory at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	for _, k := range Keys() {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(k, ".", "_")), "")
	}
	t.Chdir(t.TempDir())
	return filepath.Join(xdg, "archlens", "config.yaml")
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Model != "claude-3-opus-20240229" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", cfg.MaxTokens)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.Limits != (LimitsConfig{MaxFiles: 1000, MaxTotalMB: 50, MaxFileKB: 100}) {
		t.Errorf("Limits = %+v", cfg.Limits)
	}
	if cfg.OutputDir != "analysis" || cfg.Format != FormatText {
		t.Errorf("OutputDir = %q, Format = %q", cfg.OutputDir, cfg.Format)
	}
	if !cfg.Redact.Enabled || cfg.Cache.Enabled || cfg.Gitignore {
		t.Errorf("unexpected toggles: %+v %+v %v", cfg.Redact, cfg.Cache, cfg.Gitignore)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := Default()
	if cfg.Model != want.Model || cfg.MaxTokens != want.MaxTokens || cfg.Timeout != want.Timeout {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Limits != want.Limits || cfg.Log != want.Log || cfg.Tokens != want.Tokens {
		t.Errorf("Load() = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Redact.Paths, want.Redact.Paths) || len(cfg.Ignore.Dirs) != 0 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_UserFile(t *testing.T) {
	path := isolate(t)
	writeConfig(t, path, `model: claude-3-5-sonnet-latest
timeout: 45s
limits:
  max_files: 25
ignore:
  dirs: [vendor, third_party]
cache:
  enabled: true
  ttl: 1h
`)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "claude-3-5-sonnet-latest" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.Limits.MaxFiles != 25 || cfg.Limits.MaxFileKB != 100 {
		t.Errorf("Limits = %+v", cfg.Limits)
	}
	if !reflect.DeepEqual(cfg.Ignore.Dirs, []string{"vendor", "third_party"}) {
		t.Errorf("Ignore.Dirs = %v", cfg.Ignore.Dirs)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	isolate(t)
	writeConfig(t, LocalConfigFile, "format: markdown\n")

	if got := FindFile(); got != LocalConfigFile {
		t.Errorf("FindFile = %q", got)
	}
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Format != FormatMarkdown {
		t.Errorf("Format = %q", cfg.Format)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "output_dir: reports\n")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.OutputDir != "reports" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("ARCHLENS_MODEL", "claude-from-env")
	t.Setenv("ARCHLENS_LIMITS_MAX_FILES", "7")
	t.Setenv("ARCHLENS_IGNORE_EXTENSIONS", ".csv,.parquet")
	t.Setenv("ARCHLENS_CACHE_ENABLED", "true")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "claude-from-env" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Limits.MaxFiles != 7 {
		t.Errorf("MaxFiles = %d", cfg.Limits.MaxFiles)
	}
	if !reflect.DeepEqual(cfg.Ignore.Extensions, []string{".csv", ".parquet"}) {
		t.Errorf("Ignore.Extensions = %v", cfg.Ignore.Extensions)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled = false")
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := isolate(t)
	writeConfig(t, path, "model: from-file\nmax_tokens: 100\nformat: json\n")
	t.Setenv("ARCHLENS_MODEL", "from-env")
	t.Setenv("ARCHLENS_MAX_TOKENS", "200")

	cfg, err := Load("", map[string]any{"model": "from-flag"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "from-flag" {
		t.Errorf("Model = %q, want flag value", cfg.Model)
	}
	if cfg.MaxTokens != 200 {
		t.Errorf("MaxTokens = %d, want env value", cfg.MaxTokens)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want file value", cfg.Format)
	}
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	cfg, err := Load("", map[string]any{
		"limits.max_files": 3,
		"gitignore":        true,
		"redact.enabled":   false,
		"timeout":          "5s",
	})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Limits.MaxFiles != 3 || !cfg.Gitignore || cfg.Redact.Enabled || cfg.Timeout != 5*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := Load("", map[string]any{"maxFindings": 3}); err == nil {
		t.Error("expected error for unknown override key")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"format", map[string]any{"format": "sarif"}},
		{"max tokens", map[string]any{"max_tokens": 0}},
		{"limits", map[string]any{"limits.max_total_mb": -1}},
		{"counter", map[string]any{"tokens.counter": "bpe"}},
		{"model", map[string]any{"model": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, err := Load("", tt.overrides); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestInitAndSet(t *testing.T) {
	path := isolate(t)

	got, err := Init(false)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if got != path {
		t.Errorf("Init path = %q, want %q", got, path)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(written), "timeout: 30s\n") || strings.Contains(string(written), "30000000000") {
		t.Errorf("durations not written in Go notation:\n%s", written)
	}
	if _, err := Init(false); !errors.Is(err, ErrExists) {
		t.Errorf("second Init error = %v, want ErrExists", err)
	}
	if _, err := Init(true); err != nil {
		t.Errorf("forced Init error = %v", err)
	}

	if _, err := Set("limits.max_files", "20"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, err := Set("ignore.dirs", "vendor,tmp"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Limits.MaxFiles != 20 {
		t.Errorf("MaxFiles = %d, want 20", cfg.Limits.MaxFiles)
	}
	if !reflect.DeepEqual(cfg.Ignore.Dirs, []string{"vendor", "tmp"}) {
		t.Errorf("Ignore.Dirs = %v", cfg.Ignore.Dirs)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s after round trip", cfg.Timeout)
	}

	if _, err := Set("failOn", "high"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := Set("format", "sarif"); err == nil {
		t.Error("expected validation error")
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-config", "archlens") {
		t.Errorf("ConfigDir = %q", dir)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != len(defaults()) {
		t.Errorf("len(Keys) = %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("Keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
}

func TestYAML(t *testing.T) {
	data, err := Default().YAML()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"model: claude-3-opus-20240229", "timeout: 30s", "ttl: 24h0m0s", "max_files: 1000"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("YAML missing %q:\n%s", want, data)
		}
	}
}
