// Package cli wires together the Cobra command tree for the archlens binary.
//
// The root command runs a full analysis: it checks the API credential, asks
// for or accepts a project path (cloning git URLs first), summarizes and
// redacts the project, requests the analysis, prints it and saves it. The
// summarize, config, cache and version subcommands expose the pieces on
// their own. Errors map to deterministic exit codes.
package cli
