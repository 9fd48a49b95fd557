package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/archlens/internal/cache"
	"github.com/dshills/archlens/internal/config"
	"github.com/dshills/archlens/internal/log"
	"github.com/dshills/archlens/internal/output"
	"github.com/dshills/archlens/internal/providers"
	"github.com/dshills/archlens/internal/report"
)

// now is replaced in tests.
var now = time.Now

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	// The credential is checked before any other work.
	apiKey, err := config.LoadCredential(".")
	if err != nil {
		return authErr(err)
	}
	logger.Debug("credential loaded", slog.String("key", log.SanitizeAPIKey(apiKey)))

	writer, err := output.GetWriter(cfg.Format)
	if err != nil {
		return usageErr(err)
	}
	rules, err := report.LoadRules(cfg.RulesFile)
	if err != nil {
		return usageErr(err)
	}
	provider, err := providers.New("anthropic", providers.AnthropicOptions{
		APIKey:    apiKey,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return authErr(err)
	}

	console := output.NewConsole(cmd.OutOrStdout())
	_ = console.Banner()

	ctx := cmd.Context()
	p, err := resolveProject(ctx, cmd, args, logger)
	if err != nil {
		return err
	}
	defer p.cleanup()

	_ = console.Analyzing(p.source)
	sum, err := buildSummary(ctx, cfg, p, logger)
	if err != nil {
		return err
	}
	_ = console.Info("Project summary saved to: " + sum.path)

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTL)
	if err != nil {
		logger.Warn("analysis cache unavailable", log.Error(err))
		c = nil
	}

	res := report.New(provider, report.Options{
		Rules:  rules,
		Cache:  c,
		Logger: logger,
	}).Run(ctx, sum.payload)

	_ = console.Analysis(res.Analysis, res.Failed())

	doc := buildDocument(p, sum, res)
	data, err := output.Render(writer, doc)
	if err != nil {
		return runtimeErr(err)
	}
	path, err := report.SaveBytes(data, cfg.OutputDir, now(), writer.Extension())
	if err != nil {
		return runtimeErr(err)
	}
	_ = console.Saved("Analysis", path)

	if flagCopy {
		if err := output.Copy(res.Analysis); err != nil {
			logger.Warn("copying to clipboard failed", log.Error(err))
		} else {
			_ = console.Info("Analysis copied to clipboard.")
		}
	}

	logger.Debug("run finished", slog.String(log.RunIDKey, res.RunID), slog.Bool("failed", res.Failed()))
	return nil
}

func buildDocument(p *project, sum *summaryResult, res report.Result) *output.Document {
	doc := &output.Document{
		RunID:           res.RunID,
		Project:         p.source,
		GeneratedAt:     now(),
		Provider:        res.Provider,
		Model:           res.Model,
		FilesAnalyzed:   sum.summary.Limits.FilesAnalyzed,
		Truncated:       sum.summary.Limits.Truncated,
		EstimatedTokens: sum.summary.Limits.EstimatedTokens,
		TokensUsed:      res.TokensUsed,
		Cached:          res.Cached,
		SummaryPath:     sum.path,
		Analysis:        res.Analysis,
	}
	if repo := sum.summary.Repository; repo != nil {
		doc.Branch = repo.Branch
		doc.Head = repo.Head
	}
	if res.Err != nil {
		doc.Error = res.Err.Error()
	}
	return doc
}
