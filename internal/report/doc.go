// Package report turns a redacted project summary into an architectural
// analysis.
//
// [BuildPrompt] wraps the summary JSON in fixed instructions, optionally
// extended by a YAML rules file. A [Reporter] sends the prompt to a
// [providers.Analyzer] and never fails: any error is logged and replaced by
// [Sentinel], so a run always produces something to print and save. [Save]
// persists the reply under a timestamped name.
package report
