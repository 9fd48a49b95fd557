package prompt

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// completePath lists directories starting with the typed prefix.
func completePath(toComplete string) []string {
	dir, base := filepath.Split(toComplete)
	search := dir
	if search == "" {
		search = "."
	}
	if strings.HasPrefix(search, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			search = home + search[1:]
		}
	}

	entries, err := os.ReadDir(search)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), base) {
			continue
		}
		if strings.HasPrefix(e.Name(), ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		out = append(out, dir+e.Name()+string(filepath.Separator))
	}
	sort.Strings(out)
	return out
}
