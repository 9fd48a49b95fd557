package summarize

import (
	"path/filepath"
	"strings"
)

// IgnoredDirs are path components that exclude an entry at any depth.
var IgnoredDirs = map[string]bool{
	"node_modules":  true,
	"venv":          true,
	"__pycache__":   true,
	".git":          true,
	"dist":          true,
	"build":         true,
	".pytest_cache": true,
	".coverage":     true,
	"target":        true,
	".idea":         true,
	".vscode":       true,
	"coverage":      true,
}

// IgnoredExtensions are binary, media, archive and database suffixes.
var IgnoredExtensions = map[string]bool{
	".pyc": true, ".pyo": true, ".pyd": true,
	".so": true, ".dll": true, ".dylib": true,
	".exe": true, ".bin": true, ".dat": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".ico": true, ".svg": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wav": true,
	".pdf": true,
	".zip": true, ".tar": true, ".gz": true, ".rar": true, ".7z": true,
}

// filter decides which entries take part in a summary.
type filter struct {
	dirs       map[string]bool
	extensions map[string]bool
	maxBytes   int64
}

func newFilter(extraDirs, extraExts []string, maxBytes int64) *filter {
	f := &filter{
		dirs:       make(map[string]bool, len(IgnoredDirs)+len(extraDirs)),
		extensions: make(map[string]bool, len(IgnoredExtensions)+len(extraExts)),
		maxBytes:   maxBytes,
	}
	for d := range IgnoredDirs {
		f.dirs[d] = true
	}
	for _, d := range extraDirs {
		if d = strings.Trim(strings.TrimSpace(d), "/"); d != "" {
			f.dirs[d] = true
		}
	}
	for e := range IgnoredExtensions {
		f.extensions[e] = true
	}
	for _, e := range extraExts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.extensions[e] = true
	}
	return f
}

// ignoredName reports whether a path component excludes the entry.
func (f *filter) ignoredName(name string) bool {
	return f.dirs[name]
}

func (f *filter) ignoredExtension(name string) bool {
	return f.extensions[strings.ToLower(extension(name))]
}

func (f *filter) tooLarge(size int64) bool {
	return f.maxBytes > 0 && size > f.maxBytes
}

// extension returns the final dot suffix of name. A leading dot alone does not
// start an extension, so ".env" has none and "a.tar.gz" has ".gz". A trailing
// dot is not an extension either.
func extension(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	if trimmed == "" {
		return ""
	}
	ext := filepath.Ext(trimmed)
	if ext == "." {
		return ""
	}
	return ext
}

// isBoilerplate reports whether the first lines of a file are all blank or
// '#' comments. Files with no lines at all count as boilerplate.
func isBoilerplate(lines []string) bool {
	n := len(lines)
	if n > boilerplateWindow {
		n = boilerplateWindow
	}
	for _, line := range lines[:n] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return false
		}
	}
	return true
}
