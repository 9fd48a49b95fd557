// Package summarize builds a bounded, JSON-serializable summary of a project
// directory for LLM consumption.
//
// A summary has three parts: the filtered directory structure, one record per
// analyzed file, and the limits that bounded the run. Dependency, VCS and
// build-output directories are skipped along with binary, media, archive and
// database files, anything over the per-file size limit, and files whose first
// ten lines are blank or '#' comments. Files longer than 150 lines keep their
// first 100 and last 50 lines around an omission marker.
//
// Traversal stops once the file-count or aggregate-size cap is reached; the
// remaining files are skipped with a warning.
package summarize
