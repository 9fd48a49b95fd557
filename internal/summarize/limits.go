package summarize

// Default summary caps.
const (
	DefaultMaxFiles      = 1000
	DefaultMaxTotalBytes = 50 * 1024 * 1024 // aggregate content after truncation
	DefaultMaxFileBytes  = 100 * 1024       // on-disk size
)

// Truncation shape for long files.
const (
	HeadLines = 100
	TailLines = 50
	MaxLines  = HeadLines + TailLines

	boilerplateWindow = 10
	progressEvery     = 50
)

// SummaryFileName is written into the project root and never summarized.
const SummaryFileName = "project_summary.json"

const bytesPerMB = 1024 * 1024
