package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/archlens/internal/log"
	"github.com/dshills/archlens/internal/redact"
)

// ErrNotText is returned for files whose content is not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// newlines folds CRLF and lone CR line endings into LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// TokenCounter estimates the token count of a text.
type TokenCounter interface {
	CountTokens(text string) int
}

// Options controls a summarization run. Zero values select the defaults.
type Options struct {
	MaxFiles      int
	MaxTotalBytes int64
	MaxFileBytes  int64

	// ExtraIgnoredDirs and ExtraIgnoredExtensions extend the built-in tables.
	ExtraIgnoredDirs       []string
	ExtraIgnoredExtensions []string

	// RespectGitignore also skips paths matched by .gitignore files.
	RespectGitignore bool

	// RedactPaths are doublestar globs whose file content is replaced wholesale.
	RedactPaths []string

	Repository *Repository
	Counter    TokenCounter
	Logger     *slog.Logger
}

// Summarizer walks one project root.
type Summarizer struct {
	root   string
	opts   Options
	filter *filter
	logger *slog.Logger
}

type candidate struct {
	rel string
	abs string
}

// New creates a Summarizer for root, which must be an existing directory.
func New(root string, opts Options) (*Summarizer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("accessing %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if opts.MaxTotalBytes <= 0 {
		opts.MaxTotalBytes = DefaultMaxTotalBytes
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Summarizer{
		root:   abs,
		opts:   opts,
		filter: newFilter(opts.ExtraIgnoredDirs, opts.ExtraIgnoredExtensions, opts.MaxFileBytes),
		logger: log.WithComponent(logger, "summarize"),
	}, nil
}

// Root returns the absolute project root.
func (s *Summarizer) Root() string { return s.root }

// Summarize walks the project and builds its summary.
func (s *Summarizer) Summarize(ctx context.Context) (*ProjectSummary, error) {
	structure, candidates, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("analyzing project files", slog.String(log.RootKey, s.root), slog.Int("candidates", len(candidates)))

	var (
		files      []FileRecord
		totalBytes int64
		tokens     int
		truncated  bool
	)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(files) >= s.opts.MaxFiles {
			s.logger.Warn("reached maximum file limit, remaining files skipped",
				slog.Int(log.LimitKey, s.opts.MaxFiles))
			truncated = true
			break
		}
		if totalBytes >= s.opts.MaxTotalBytes {
			s.logger.Warn("reached maximum content size limit, remaining files skipped",
				slog.String(log.LimitKey, fmt.Sprintf("%.1fMB", float64(s.opts.MaxTotalBytes)/bytesPerMB)))
			truncated = true
			break
		}

		rec, err := s.analyzeFile(c)
		if err != nil {
			s.logger.Warn("skipping file", slog.String(log.PathKey, c.rel), log.Error(err))
			continue
		}
		if rec == nil {
			continue
		}

		files = append(files, *rec)
		totalBytes += int64(len(rec.Content))
		if s.opts.Counter != nil {
			tokens += s.opts.Counter.CountTokens(rec.Content)
		}
		if len(files)%progressEvery == 0 {
			s.logger.Info("progress", slog.Int("files", len(files)))
		}
	}

	s.logger.Info("analysis complete", slog.Int("files", len(files)))

	if files == nil {
		files = []FileRecord{}
	}
	return &ProjectSummary{
		DirectoryStructure: structure,
		Files:              files,
		Limits: Limits{
			MaxFiles:        s.opts.MaxFiles,
			MaxTotalSizeMB:  float64(s.opts.MaxTotalBytes) / bytesPerMB,
			MaxFileSizeKB:   float64(s.opts.MaxFileBytes) / 1024,
			FilesAnalyzed:   len(files),
			TotalSizeMB:     float64(totalBytes) / bytesPerMB,
			Truncated:       truncated,
			EstimatedTokens: tokens,
		},
		Repository: s.opts.Repository,
	}, nil
}

// scan walks the tree once in lexical order, returning the structure listing
// and the files eligible for analysis.
func (s *Summarizer) scan(ctx context.Context) ([]Entry, []candidate, error) {
	structure := []Entry{{Type: EntryDirectory, Path: ".", Level: 0}}
	var candidates []candidate

	var gi *gitIgnoreCache
	if s.opts.RespectGitignore {
		gi = newGitIgnoreCache(s.root)
	}

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			s.logger.Warn("cannot access path", slog.String(log.PathKey, path), log.Error(err))
			return nil
		}
		if path == s.root {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		level := strings.Count(rel, "/") + 1

		if s.filter.ignoredName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if gi != nil {
				if gi.ignored(path, true) {
					return filepath.SkipDir
				}
				gi.load(path)
			}
			structure = append(structure, Entry{Type: EntryDirectory, Path: rel, Level: level})
			return nil
		}

		if gi != nil && gi.ignored(path, false) {
			return nil
		}
		if rel == SummaryFileName {
			return nil
		}
		if s.filter.ignoredExtension(d.Name()) {
			return nil
		}

		// Stat follows symlinks so linked files are summarized like regular ones.
		info, err := os.Stat(path)
		if err != nil {
			s.logger.Warn("cannot stat file", slog.String(log.PathKey, rel), log.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() || s.filter.tooLarge(info.Size()) {
			return nil
		}

		structure = append(structure, Entry{Type: EntryFile, Path: rel, Level: level})
		candidates = append(candidates, candidate{rel: rel, abs: path})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", s.root, err)
	}
	return structure, candidates, nil
}

// analyzeFile reads and condenses one file. It returns nil, nil for files
// dropped by the boilerplate heuristic.
func (s *Summarizer) analyzeFile(c candidate) (*FileRecord, error) {
	data, err := os.ReadFile(c.abs)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrNotText
	}

	text := newlines.Replace(string(data))
	lines := splitLines(text)

	if isBoilerplate(lines) {
		s.logger.Debug("skipping blank or comment-only header", slog.String(log.PathKey, c.rel))
		return nil, nil
	}

	content, _ := truncateLines(lines)
	content = redact.Path(content, c.rel, s.opts.RedactPaths)

	return &FileRecord{
		Path:      c.rel,
		Extension: extension(filepath.Base(c.rel)),
		LineCount: len(lines),
		Content:   content,
	}, nil
}

// Save writes the summary as indented JSON to <root>/project_summary.json and
// returns the path written.
func (s *Summarizer) Save(summary *ProjectSummary) (string, error) {
	path := filepath.Join(s.root, SummaryFileName)
	if err := Save(summary, path); err != nil {
		return "", err
	}
	return path, nil
}

// Save writes summary as indented JSON to path.
func Save(summary *ProjectSummary, path string) error {
	data, err := Marshal(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// Marshal encodes v as indented JSON without HTML escaping, so source code
// keeps its '<', '>' and '&' characters.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	return buf.Bytes(), nil
}
