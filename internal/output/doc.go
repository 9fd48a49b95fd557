// Package output renders analyses for the terminal and for saved files.
//
// Three file formats are supported:
//   - text:     the analysis text exactly as received (default)
//   - markdown: a heading and run metadata table followed by the analysis
//   - json:     the full [Document] for machine consumption
//
// Use [GetWriter] to obtain a [Writer] for a format string. [Console] prints
// the banner and framed analysis with lipgloss styles, and [Copy] puts the
// analysis on the system clipboard.
package output
