package summarize

// EntryType distinguishes files from directories in the structure listing.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// Entry is one node of the directory structure listing.
type Entry struct {
	Type  EntryType `json:"type"`
	Path  string    `json:"path"`
	Level int       `json:"level"`
}

// FileRecord describes one analyzed file.
type FileRecord struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	LineCount int    `json:"line_count"`
	Content   string `json:"content"`
}

// Limits reports the caps applied to a run and how much of them was used.
type Limits struct {
	MaxFiles        int     `json:"max_files"`
	MaxTotalSizeMB  float64 `json:"max_total_size_mb"`
	MaxFileSizeKB   float64 `json:"max_file_size_kb"`
	FilesAnalyzed   int     `json:"files_analyzed"`
	TotalSizeMB     float64 `json:"total_size_mb"`
	Truncated       bool    `json:"truncated"`
	EstimatedTokens int     `json:"estimated_tokens,omitempty"`
}

// Repository holds git metadata for the summarized root, when it has any.
type Repository struct {
	Root   string `json:"root"`
	Head   string `json:"head,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// ProjectSummary is the complete result of one summarization run.
type ProjectSummary struct {
	DirectoryStructure []Entry      `json:"directory_structure"`
	Files              []FileRecord `json:"files"`
	Limits             Limits       `json:"analysis_limits"`
	Repository         *Repository  `json:"repository,omitempty"`
}
