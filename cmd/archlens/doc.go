// Archlens is a CLI that asks Claude for an architectural review of a project.
//
// It walks the project directory, builds a bounded summary of the source
// files, redacts likely secrets, and sends the summary to the Anthropic
// Messages API. The reply is printed and saved under analysis/.
//
// Usage:
//
//	archlens                        # prompt for a project path
//	archlens ./myproject            # analyze a local directory
//	archlens git@host:org/repo.git  # analyze a shallow clone
//	archlens summarize ./myproject  # build project_summary.json only
//	archlens config show            # print the effective configuration
//
// The API key is read from CLAUDE_API_KEY or a .env file in the working
// directory.
package main
