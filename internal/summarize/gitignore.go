package summarize

import (
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// gitIgnoreCache holds the .gitignore files found under a root. Files are
// loaded lazily as their directories are visited, and a path is checked
// against every .gitignore between it and the root.
type gitIgnoreCache struct {
	root    string
	cache   map[string]*ignore.GitIgnore // dirs with a .gitignore only
	visited map[string]struct{}
}

func newGitIgnoreCache(absRoot string) *gitIgnoreCache {
	c := &gitIgnoreCache{
		root:    absRoot,
		cache:   make(map[string]*ignore.GitIgnore),
		visited: make(map[string]struct{}),
	}
	c.load(absRoot)
	return c
}

func (c *gitIgnoreCache) load(dir string) {
	if _, seen := c.visited[dir]; seen {
		return
	}
	c.visited[dir] = struct{}{}

	if gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore")); err == nil {
		c.cache[dir] = gi
	}
}

// ignored reports whether absPath is excluded by any applicable .gitignore.
func (c *gitIgnoreCache) ignored(absPath string, isDir bool) bool {
	if len(c.cache) == 0 {
		return false
	}
	dir := filepath.Dir(absPath)
	for {
		if gi, ok := c.cache[dir]; ok {
			rel, _ := filepath.Rel(dir, absPath)
			rel = filepath.ToSlash(rel)
			if gi.MatchesPath(rel) || (isDir && gi.MatchesPath(rel+"/")) {
				return true
			}
		}
		if dir == c.root {
			return false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}
