package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// exitError carries the exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error   { return &exitError{code: ExitUsageError, err: err} }
func authErr(err error) error    { return &exitError{code: ExitAuthError, err: err} }
func runtimeErr(err error) error { return &exitError{code: ExitRuntimeError, err: err} }

// exitCodeFor maps a command error to a process exit code. Errors raised by
// cobra itself (unknown flags, wrong argument counts) are usage errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}

// Persistent flags
var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "archlens [path]",
	Short: "Architectural insights for a project directory",
	Long: `archlens summarizes a project directory (structure plus a bounded excerpt of
every text file), strips likely secrets, and asks Claude for an architectural
analysis. The analysis is printed and saved under ./analysis.

The path may be a local directory or a git URL, which is shallow-cloned first.
Without a path, archlens asks for one interactively.

Requires CLAUDE_API_KEY in the environment or in a .env file in the working
directory.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print archlens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "archlens version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: user config dir, then ./archlens.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	addAnalyzeFlags(rootCmd)

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command and returns an exit code.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCodeFor(err)
}
