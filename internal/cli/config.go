package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/archlens/internal/config"
	"github.com/dshills/archlens/internal/log"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage archlens configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(flagForce)
		if errors.Is(err, config.ErrExists) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s (use --force to overwrite)\n", path)
			return nil
		}
		if err != nil {
			return runtimeErr(fmt.Errorf("writing config: %w", err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value in the user config file. Keys use dotted names such as limits.max_files.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Set(args[0], args[1]); err != nil {
			return usageErr(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := cfg.YAML()
		if err != nil {
			return runtimeErr(err)
		}

		out := cmd.OutOrStdout()
		if file := configFileUsed(); file != "" {
			fmt.Fprintf(out, "# config file: %s\n", file)
		}
		fmt.Fprintf(out, "# %s: %s\n", config.CredentialEnv, credentialStatus())
		fmt.Fprint(out, string(data))
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range config.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
	},
}

func configFileUsed() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.FindFile()
}

// credentialStatus describes the credential without revealing it.
func credentialStatus() string {
	key, err := config.LoadCredential(".")
	switch {
	case err == nil:
		return "set (" + log.SanitizeAPIKey(key) + ")"
	case errors.Is(err, config.ErrMissingCredential):
		return "not set"
	case errors.Is(err, config.ErrInvalidCredential):
		return "invalid format"
	default:
		return err.Error()
	}
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)
}
