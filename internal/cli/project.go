package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/archlens/internal/config"
	"github.com/dshills/archlens/internal/gitctx"
	"github.com/dshills/archlens/internal/log"
	"github.com/dshills/archlens/internal/prompt"
	"github.com/dshills/archlens/internal/redact"
	"github.com/dshills/archlens/internal/summarize"
	"github.com/dshills/archlens/internal/tokens"
)

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	lc := log.FromEnv()
	if os.Getenv("ARCHLENS_DEBUG") == "" {
		lc.Level = cfg.Log.Level
	}
	lc.Format = log.Format(cfg.Log.Format)
	lc.Output = w
	return log.New(lc)
}

// project is a resolved project root. Cloned roots are removed by cleanup.
type project struct {
	root    string
	source  string
	cloned  bool
	cleanup func()
}

// resolveProject turns the optional path argument into a project root,
// prompting when it is absent and cloning when it is a git URL.
func resolveProject(ctx context.Context, cmd *cobra.Command, args []string, logger *slog.Logger) (*project, error) {
	if len(args) == 0 {
		root, err := pathPrompter(cmd).PromptPath(ctx)
		if err != nil {
			return nil, usageErr(err)
		}
		return &project{root: root, source: root, cleanup: func() {}}, nil
	}

	arg := args[0]
	if gitctx.IsGitURL(arg) {
		logger.Info("cloning repository", slog.String("url", arg))
		dir, err := gitctx.Clone(ctx, arg, gitctx.CloneOptions{Progress: progressWriter(cmd)})
		if err != nil {
			return nil, runtimeErr(err)
		}
		return &project{
			root:   dir,
			source: arg,
			cloned: true,
			cleanup: func() {
				if err := os.RemoveAll(dir); err != nil {
					logger.Warn("removing clone failed", slog.String(log.PathKey, dir), log.Error(err))
				}
			},
		}, nil
	}

	root, err := prompt.ValidatePath(arg)
	if err != nil {
		return nil, usageErr(err)
	}
	return &project{root: root, source: root, cleanup: func() {}}, nil
}

func pathPrompter(cmd *cobra.Command) prompt.PathPrompter {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.New(f, cmd.OutOrStdout())
	}
	return prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

func progressWriter(cmd *cobra.Command) io.Writer {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		return f
	}
	return nil
}

// summaryResult is a built and saved project summary.
type summaryResult struct {
	summary *summarize.ProjectSummary
	path    string
	// payload is the summary as sent to the API, redacted unless disabled.
	payload any
}

func buildSummary(ctx context.Context, cfg config.Config, p *project, logger *slog.Logger) (*summaryResult, error) {
	var repo *summarize.Repository
	if meta, err := gitctx.Meta(p.root); err == nil {
		repo = &summarize.Repository{Root: meta.Root, Head: meta.Head, Branch: meta.Branch}
		if p.cloned {
			repo.Root = p.source
		}
	} else if !errors.Is(err, gitctx.ErrNotRepository) {
		logger.Debug("reading repository metadata failed", log.Error(err))
	}

	counter, err := tokens.New(cfg.Tokens.Counter, cfg.Tokens.Model)
	if err != nil {
		logger.Warn("token counter unavailable, using approximation", log.Error(err))
		counter = tokens.Approx{}
	}

	var redactPaths []string
	if cfg.Redact.Enabled {
		redactPaths = cfg.Redact.Paths
	}

	s, err := summarize.New(p.root, summarize.Options{
		MaxFiles:               cfg.Limits.MaxFiles,
		MaxTotalBytes:          int64(cfg.Limits.MaxTotalMB) * 1024 * 1024,
		MaxFileBytes:           int64(cfg.Limits.MaxFileKB) * 1024,
		ExtraIgnoredDirs:       cfg.Ignore.Dirs,
		ExtraIgnoredExtensions: cfg.Ignore.Extensions,
		RespectGitignore:       cfg.Gitignore,
		RedactPaths:            redactPaths,
		Repository:             repo,
		Counter:                counter,
		Logger:                 logger,
	})
	if err != nil {
		return nil, usageErr(err)
	}

	summary, err := s.Summarize(ctx)
	if err != nil {
		return nil, runtimeErr(fmt.Errorf("summarizing project: %w", err))
	}

	// A clone is removed after the run, so its summary goes next to the analyses.
	var path string
	if p.cloned {
		path = filepath.Join(cfg.OutputDir, summarize.SummaryFileName)
		err = os.MkdirAll(cfg.OutputDir, 0o755)
		if err == nil {
			err = summarize.Save(summary, path)
		}
	} else {
		path, err = s.Save(summary)
	}
	if err != nil {
		return nil, runtimeErr(err)
	}

	var payload any = summary
	if cfg.Redact.Enabled {
		payload, err = redact.JSON(summary)
		if err != nil {
			return nil, runtimeErr(fmt.Errorf("redacting summary: %w", err))
		}
	} else {
		logger.Warn("secret redaction is disabled")
	}

	return &summaryResult{summary: summary, path: path, payload: payload}, nil
}
