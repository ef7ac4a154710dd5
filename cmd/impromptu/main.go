// Impromptu asks questions in the terminal and prints the answers.
//
// A form is a YAML file listing questions: free text, secrets, single and
// multiple choice lists and static messages. Questions can jump to others
// depending on the answer given, so one file describes a whole branching
// interview.
//
// Usage:
//
//	impromptu [command] [flags]
//
// See 'impromptu --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/impromptu/internal/config"
	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	configPath string
	logLevel   string

	// settings is loaded before any subcommand runs
	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "impromptu",
	Short: "Interactive terminal forms",
	Long: `Impromptu asks a series of questions in the terminal and prints the answers.

Forms are YAML files. Each question is rendered as a text input, a masked
secret, a choice list, a multi-select list or a static message. Jumps let
an answer insert, branch to, merge back from or skip over other questions.

Results are printed as a table, or as JSON for scripts.`,
	Version: version.Version,
	Example: `  # Ask the questions in lunch.yaml
  impromptu run lunch.yaml

  # Check a form without running it
  impromptu validate lunch.yaml

  # Try the built-in demo
  impromptu demo`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := settings.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		if err := logging.InitializeFile(level, settings.Log.File); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the platform config dir, or $"+config.ConfigEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level written to the log file (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "impromptu %s\n", version.Full())
	},
}
