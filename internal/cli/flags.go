package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/archlens/internal/config"
)

// Summary flags, shared by the root and summarize commands.
var (
	flagMaxFiles     int
	flagMaxTotalMB   int
	flagMaxFileKB    int
	flagIgnoreDirs   string
	flagIgnoreExts   string
	flagGitignore    bool
	flagNoRedact     bool
	flagTokenCounter string
)

// Analysis flags, root command only.
var (
	flagModel     string
	flagMaxTokens int
	flagTimeout   time.Duration
	flagEndpoint  string
	flagOutputDir string
	flagFormat    string
	flagRules     string
	flagCache     bool
	flagNoCache   bool
	flagCopy      bool
)

func addSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum number of files to include (default 1000)")
	cmd.Flags().IntVar(&flagMaxTotalMB, "max-total-mb", 0, "Maximum total content size in MB (default 50)")
	cmd.Flags().IntVar(&flagMaxFileKB, "max-file-kb", 0, "Skip files larger than this many KB (default 100)")
	cmd.Flags().StringVar(&flagIgnoreDirs, "ignore-dirs", "", "Extra directory names to skip (comma-separated)")
	cmd.Flags().StringVar(&flagIgnoreExts, "ignore-exts", "", "Extra file extensions to skip (comma-separated)")
	cmd.Flags().BoolVar(&flagGitignore, "gitignore", false, "Also skip paths matched by .gitignore files")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().StringVar(&flagTokenCounter, "tokens", "", "Token estimator (approx, tiktoken)")
}

func addAnalyzeFlags(cmd *cobra.Command) {
	addSummaryFlags(cmd)
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().IntVar(&flagMaxTokens, "max-tokens", 0, "Maximum tokens in the reply")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "API request timeout (default 30s)")
	cmd.Flags().StringVar(&flagEndpoint, "endpoint", "", "Messages API URL")
	cmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory for saved analyses (default ./analysis)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Saved analysis format (text, markdown, json)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "YAML file with extra focus areas and questions")
	cmd.Flags().BoolVar(&flagCache, "cache", false, "Reuse cached analyses of an unchanged summary")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable the analysis cache")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the analysis to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("cache", "no-cache")
}

// buildOverrides maps set flags onto config keys. Zero values mean unset.
func buildOverrides() map[string]any {
	m := make(map[string]any)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagMaxTokens > 0 {
		m["max_tokens"] = flagMaxTokens
	}
	if flagTimeout > 0 {
		m["timeout"] = flagTimeout
	}
	if flagEndpoint != "" {
		m["endpoint"] = flagEndpoint
	}
	if flagOutputDir != "" {
		m["output_dir"] = flagOutputDir
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagRules != "" {
		m["rules_file"] = flagRules
	}
	if flagMaxFiles > 0 {
		m["limits.max_files"] = flagMaxFiles
	}
	if flagMaxTotalMB > 0 {
		m["limits.max_total_mb"] = flagMaxTotalMB
	}
	if flagMaxFileKB > 0 {
		m["limits.max_file_kb"] = flagMaxFileKB
	}
	if flagIgnoreDirs != "" {
		m["ignore.dirs"] = splitComma(flagIgnoreDirs)
	}
	if flagIgnoreExts != "" {
		m["ignore.extensions"] = splitComma(flagIgnoreExts)
	}
	if flagGitignore {
		m["gitignore"] = true
	}
	if flagNoRedact {
		m["redact.enabled"] = false
	}
	if flagTokenCounter != "" {
		m["tokens.counter"] = flagTokenCounter
	}
	if flagCache {
		m["cache.enabled"] = true
	}
	if flagNoCache {
		m["cache.enabled"] = false
	}
	if flagLogLevel != "" {
		m["log.level"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["log.format"] = flagLogFormat
	}
	return m
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig, buildOverrides())
	if err != nil {
		return config.Config{}, usageErr(err)
	}
	return cfg, nil
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
