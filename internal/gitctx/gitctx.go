package gitctx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned by Meta when no repository encloses the path.
var ErrNotRepository = errors.New("not a git repository")

// RepoMeta contains git repository metadata.
type RepoMeta struct {
	Root   string
	Head   string
	Branch string
}

// Meta opens the repository enclosing dir, searching parent directories for
// .git. Head is empty for a repository without commits, Branch is empty for
// a detached HEAD.
func Meta(dir string) (RepoMeta, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return RepoMeta{}, fmt.Errorf("resolving %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return RepoMeta{}, fmt.Errorf("%s: %w", abs, ErrNotRepository)
		}
		return RepoMeta{}, fmt.Errorf("opening repository at %s: %w", abs, err)
	}

	meta := RepoMeta{Root: abs}
	if wt, err := repo.Worktree(); err == nil {
		meta.Root = wt.Filesystem.Root()
	}

	// HEAD is read without resolving so an unborn branch still has a name.
	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return meta, nil
	}
	if head.Type() == plumbing.SymbolicReference {
		if head.Target().IsBranch() {
			meta.Branch = head.Target().Short()
		}
		if resolved, err := repo.Reference(head.Target(), true); err == nil {
			meta.Head = resolved.Hash().String()
		}
	} else {
		meta.Head = head.Hash().String()
	}
	return meta, nil
}

// IsGitURL reports whether input names a remote repository rather than a
// local directory: an scp-style "git@" address, a git/ssh URL, or anything
// ending in ".git".
func IsGitURL(input string) bool {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return false
	case strings.HasPrefix(input, "git@"),
		strings.HasPrefix(input, "ssh://"),
		strings.HasPrefix(input, "git://"):
		return true
	}
	return strings.HasSuffix(input, ".git") && !isLocalDir(input)
}

func isLocalDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CloneOptions controls Clone.
type CloneOptions struct {
	// TempDir is the parent of the clone directory. Default: os.TempDir().
	TempDir string
	// Progress receives the remote's progress output when non-nil.
	Progress io.Writer
}

// Clone makes a shallow clone of the default branch of url in a new temporary
// directory and returns its path. The caller owns the directory. Nothing is
// left behind on failure.
func Clone(ctx context.Context, url string, opts CloneOptions) (string, error) {
	dir, err := os.MkdirTemp(opts.TempDir, "archlens-git-")
	if err != nil {
		return "", fmt.Errorf("creating clone directory: %w", err)
	}

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		Progress:      opts.Progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
		Tags:          git.NoTags,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("cloning %s: %w", url, err)
	}
	return dir, nil
}
