package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "ARCHLENS"

// Output formats for the saved analysis.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config is the effective archlens configuration.
type Config struct {
	Model     string        `mapstructure:"model" yaml:"model"`
	MaxTokens int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	OutputDir string        `mapstructure:"output_dir" yaml:"output_dir"`
	Format    string        `mapstructure:"format" yaml:"format"`
	RulesFile string        `mapstructure:"rules_file" yaml:"rules_file,omitempty"`
	Gitignore bool          `mapstructure:"gitignore" yaml:"gitignore"`

	Limits LimitsConfig `mapstructure:"limits" yaml:"limits"`
	Ignore IgnoreConfig `mapstructure:"ignore" yaml:"ignore"`
	Redact RedactConfig `mapstructure:"redact" yaml:"redact"`
	Cache  CacheConfig  `mapstructure:"cache" yaml:"cache"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Tokens TokensConfig `mapstructure:"tokens" yaml:"tokens"`
}

// LimitsConfig caps the size of a project summary.
type LimitsConfig struct {
	MaxFiles   int `mapstructure:"max_files" yaml:"max_files"`
	MaxTotalMB int `mapstructure:"max_total_mb" yaml:"max_total_mb"`
	MaxFileKB  int `mapstructure:"max_file_kb" yaml:"max_file_kb"`
}

// IgnoreConfig extends the built-in ignore tables.
type IgnoreConfig struct {
	Dirs       []string `mapstructure:"dirs" yaml:"dirs"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// RedactConfig controls secret redaction.
type RedactConfig struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Paths   []string `mapstructure:"paths" yaml:"paths"`
}

// CacheConfig controls the analysis cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir     string        `mapstructure:"dir" yaml:"dir,omitempty"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LogConfig selects log level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TokensConfig selects the token estimator.
type TokensConfig struct {
	Counter string `mapstructure:"counter" yaml:"counter"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:     "claude-3-opus-20240229",
		MaxTokens: 4000,
		Timeout:   30 * time.Second,
		OutputDir: "analysis",
		Format:    FormatText,
		Limits: LimitsConfig{
			MaxFiles:   1000,
			MaxTotalMB: 50,
			MaxFileKB:  100,
		},
		Ignore: IgnoreConfig{Dirs: []string{}, Extensions: []string{}},
		Redact: RedactConfig{
			Enabled: true,
			Paths:   []string{"**/.env", "**/*secrets*"},
		},
		Cache: CacheConfig{TTL: 24 * time.Hour},
		Log:   LogConfig{Level: "info", Format: "text"},
		Tokens: TokensConfig{
			Counter: "approx",
		},
	}
}

// defaults flattens Default into viper keys.
func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"model":               d.Model,
		"max_tokens":          d.MaxTokens,
		"timeout":             d.Timeout,
		"endpoint":            d.Endpoint,
		"output_dir":          d.OutputDir,
		"format":              d.Format,
		"rules_file":          d.RulesFile,
		"gitignore":           d.Gitignore,
		"limits.max_files":    d.Limits.MaxFiles,
		"limits.max_total_mb": d.Limits.MaxTotalMB,
		"limits.max_file_kb":  d.Limits.MaxFileKB,
		"ignore.dirs":         d.Ignore.Dirs,
		"ignore.extensions":   d.Ignore.Extensions,
		"redact.enabled":      d.Redact.Enabled,
		"redact.paths":        d.Redact.Paths,
		"cache.enabled":       d.Cache.Enabled,
		"cache.dir":           d.Cache.Dir,
		"cache.ttl":           d.Cache.TTL,
		"log.level":           d.Log.Level,
		"log.format":          d.Log.Format,
		"tokens.counter":      d.Tokens.Counter,
		"tokens.model":        d.Tokens.Model,
	}
}

// Keys lists every configuration key in sorted order.
func Keys() []string {
	d := defaults()
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConfigDir returns the platform-appropriate config directory for archlens.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "archlens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "archlens"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "archlens"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "archlens"), nil
	default:
		return filepath.Join(home, ".config", "archlens"), nil
	}
}

// ConfigPath returns the full path to the user config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LocalConfigFile is looked up in the working directory when no user config
// file exists.
const LocalConfigFile = "archlens.yaml"

// FindFile returns the config file Load would read, or "" when there is none.
func FindFile() string {
	if path, err := ConfigPath(); err == nil {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}
	return ""
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load builds the effective config by merging defaults <- file <- env <-
// overrides. An empty file selects FindFile; a named file must exist.
// Override keys are the dotted names from Keys.
func Load(file string, overrides map[string]any) (Config, error) {
	v := newViper()

	if file == "" {
		file = FindFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		if filepath.Ext(file) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	for k, val := range overrides {
		if _, ok := defaults()[k]; !ok {
			return Config{}, fmt.Errorf("unknown config key: %s", k)
		}
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatMarkdown, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q (want text, markdown or json)", c.Format)
	}
	if c.Model == "" {
		return errors.New("model must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Limits.MaxFiles <= 0 || c.Limits.MaxTotalMB <= 0 || c.Limits.MaxFileKB <= 0 {
		return errors.New("limits must be positive")
	}
	switch strings.ToLower(c.Tokens.Counter) {
	case "", "approx", "tiktoken":
	default:
		return fmt.Errorf("invalid tokens.counter %q (want approx or tiktoken)", c.Tokens.Counter)
	}
	return nil
}

// YAML renders the config as it would be written by Save.
func (c Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg Config, path string) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ErrExists is returned by Init when the config file is already present.
var ErrExists = errors.New("config file already exists")

// Init writes the default config to the user config path unless one exists.
func Init(force bool) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s: %w", path, ErrExists)
	}
	return path, Save(Default(), path)
}

// Set updates one key in the user config file, starting from the defaults
// when the file does not exist yet.
func Set(key, value string) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	file := ""
	if _, err := os.Stat(path); err == nil {
		file = path
	}

	v := newViper()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	if _, ok := defaults()[key]; !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	v.Set(key, value)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return path, Save(cfg, path)
}
