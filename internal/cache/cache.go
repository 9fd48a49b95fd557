package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Entry is one cached analysis reply.
type Entry struct {
	Key       string    `json:"key"`
	Model     string    `json:"model"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cache is a directory of analysis replies. A disabled Cache misses on every
// Get and ignores every Put.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// New creates a Cache. An empty dir selects DefaultDir; ttl <= 0 never expires.
func New(enabled bool, dir string, ttl time.Duration) (*Cache, error) {
	c := &Cache{enabled: enabled, ttl: ttl, now: time.Now}
	if !enabled {
		return c, nil
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	c.dir = dir
	return c, nil
}

// Get returns the analysis stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	if !c.enabled {
		return Entry{}, false
	}
	entry, err := c.read(c.entryPath(key))
	if err != nil || c.expired(entry) {
		return Entry{}, false
	}
	return entry, true
}

// Put stores analysis under key, replacing any previous entry.
func (c *Cache) Put(key, model, analysis string) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(Entry{
		Key:       key,
		Model:     model,
		Analysis:  analysis,
		CreatedAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.entryPath(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (c *Cache) Clear() (int, error) {
	if !c.enabled {
		return 0, nil
	}
	names, err := c.entries()
	if err != nil {
		return 0, err
	}
	var removed int
	for _, name := range names {
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats describes the cache directory.
type Stats struct {
	Dir        string `json:"dir"`
	Enabled    bool   `json:"enabled"`
	Entries    int    `json:"entries"`
	Expired    int    `json:"expired"`
	TotalBytes int64  `json:"totalBytes"`
}

// Stats counts entries and their size.
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{Dir: c.dir, Enabled: c.enabled}
	if !c.enabled {
		return stats, nil
	}
	names, err := c.entries()
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		path := filepath.Join(c.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
		if entry, err := c.read(path); err == nil && c.expired(entry) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory, empty when disabled.
func (c *Cache) Dir() string { return c.dir }

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool { return c.enabled }

// Key derives the cache key for a model and prompt.
func Key(model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) entries() ([]string, error) {
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var names []string
	for _, e := range dirEntries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (c *Cache) read(path string) (Entry, error) {
	var entry Entry
	data, err := os.ReadFile(path)
	if err != nil {
		return entry, err
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, fmt.Errorf("decoding %s: %w", path, err)
	}
	return entry, nil
}

func (c *Cache) expired(e Entry) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) > c.ttl
}

// entryPath maps any key string to a fixed-length file name.
func (c *Cache) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+".json")
}

// DefaultDir returns the per-user cache directory for archlens.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "archlens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "archlens"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "archlens", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "archlens", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "archlens"), nil
	}
}
