package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/archlens/internal/summarize"
)

var flagPrint bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize [path]",
	Short: "Build and save the project summary without calling the API",
	Long: `Summarize walks the project like a full run and writes project_summary.json
into the project root. No credential is needed. With --print the summary that
would be sent, redacted unless --no-redact is given, goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg, cmd.ErrOrStderr())

		p, err := resolveProject(cmd.Context(), cmd, args, logger)
		if err != nil {
			return err
		}
		defer p.cleanup()

		sum, err := buildSummary(cmd.Context(), cfg, p, logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if flagPrint {
			data, err := summarize.Marshal(sum.payload)
			if err != nil {
				return runtimeErr(err)
			}
			if _, err := out.Write(data); err != nil {
				return runtimeErr(err)
			}
			return nil
		}

		limits := sum.summary.Limits
		fmt.Fprintf(out, "Summary saved to: %s\n", sum.path)
		fmt.Fprintf(out, "Files analyzed: %d (%.2f MB)\n", limits.FilesAnalyzed, limits.TotalSizeMB)
		if limits.EstimatedTokens > 0 {
			fmt.Fprintf(out, "Estimated tokens: %d\n", limits.EstimatedTokens)
		}
		if limits.Truncated {
			fmt.Fprintln(out, "Limits reached: some files were skipped.")
		}
		return nil
	},
}

func init() {
	addSummaryFlags(summarizeCmd)
	summarizeCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the summary JSON instead of statistics")
}
