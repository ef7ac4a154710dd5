package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/muurk/impromptu/internal/config"
	"github.com/muurk/impromptu/internal/engine"
	"github.com/muurk/impromptu/internal/form"
	"github.com/muurk/impromptu/internal/logging"
	"github.com/muurk/impromptu/internal/picker"
	"github.com/muurk/impromptu/internal/terminal"
	"github.com/muurk/impromptu/internal/ui"
)

var (
	outputFormat string
	forceInit    bool
)

// errNotTerminal is returned when stdin cannot drive a form
var errNotTerminal = errors.New("impromptu needs an interactive terminal on stdin")

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// runCmd asks the questions of a form file
var runCmd = &cobra.Command{
	Use:   "run <form.yaml>",
	Short: "Ask the questions in a form file",
	Long: `Run a form interactively and print the answers once it finishes.

The form takes over the terminal while it runs. Answers are printed as a
table when stdout is a terminal; use --format json to feed them to a script.

Press Ctrl+C at any time to abandon the form.`,
	Example: `  # Ask the questions in lunch.yaml
  impromptu run lunch.yaml

  # Print the answers as JSON
  impromptu run lunch.yaml --format json > answers.json`,
	Args: cobra.ExactArgs(1),
	RunE: runForm,
}

func init() {
	runCmd.Flags().StringVar(&outputFormat, "format", "", "Output format (table, json); defaults to the config file")
	demoCmd.Flags().StringVar(&outputFormat, "format", "", "Output format (table, json); defaults to the config file")
	pickCmd.Flags().StringVar(&outputFormat, "format", "", "Output format (table, json); defaults to the config file")
}

func runForm(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	printer := ui.NewPrinter(cmd.OutOrStdout())

	fm, err := loadForm(args[0])
	if err != nil {
		printer.PrintFailure("Cannot run form", err)
		return fmt.Errorf("failed to load form: %w", err)
	}

	title := fm.Title()
	if title == "" {
		title = strings.TrimSuffix(args[0], ".yaml")
	}
	return ask(cmd, title, func(e *engine.Engine) error {
		_, err := fm.Register(e)
		return err
	})
}

// loadForm reads and validates a form, applying the theme defaults from the
// config file
func loadForm(path string) (*form.Form, error) {
	def, err := form.Load(path)
	if err != nil {
		return nil, err
	}
	defaults, err := settings.ThemeSettings()
	if err != nil {
		return nil, fmt.Errorf("config theme: %w", err)
	}
	return form.New(def, defaults...)
}

// ask runs an engine on the real terminal and prints the results
func ask(cmd *cobra.Command, title string, register func(e *engine.Engine) error) error {
	format, err := resolveFormat()
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	surface, err := terminal.NewTcell()
	if err != nil {
		return &engine.Error{Type: engine.ErrTypeTerminalInit, Message: "failed to open terminal", Err: err}
	}
	e := engine.New(surface)
	if err := register(e); err != nil {
		return fmt.Errorf("failed to register questions: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := e.Start(ctx)
	printer := ui.NewPrinter(cmd.OutOrStdout())
	if err != nil {
		if engine.IsInterrupted(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Form cancelled.")
			return err
		}
		printer.PrintFailure("Form aborted", err)
		return fmt.Errorf("form failed: %w", err)
	}

	logging.Info("Results printed",
		zap.String("session", e.Session()),
		zap.String("format", format),
		zap.Int("answers", len(results)),
	)
	return printResults(cmd.OutOrStdout(), format, title, results)
}

// resolveFormat picks the --format flag over the config file
func resolveFormat() (string, error) {
	format := outputFormat
	if format == "" {
		format = settings.Output.Format
	}
	if !slices.Contains(config.Formats, format) {
		return "", fmt.Errorf("unknown format %q (use %s)", format, strings.Join(config.Formats, " or "))
	}
	return format, nil
}

func printResults(w io.Writer, format, title string, results engine.Results) error {
	printer := ui.NewPrinter(w)
	if format == config.FormatJSON {
		return printer.PrintJSON(title, results)
	}

	var buf strings.Builder
	ui.NewPrinter(&buf).SetWidth(printer.Width()).PrintResults(title, results)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ui.RenderOnce(w, buf.String())
	}
	printer.Print(buf.String())
	return nil
}

// pickCmd lists the forms in a directory and runs the chosen one
var pickCmd = &cobra.Command{
	Use:   "pick [dir]",
	Short: "Choose a form file from a directory and run it",
	Long: `List the form files in a directory, validating each one, and run the
form you choose. Invalid forms are marked with their first problem.

The directory defaults to the current one. Press o to open a file that
lives elsewhere.`,
	Example: `  impromptu pick
  impromptu pick ./forms --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	entry, err := picker.Run(dir)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	logging.Debug("Form picked", zap.String("path", entry.Path))
	return runForm(cmd, []string{entry.Path})
}

// validateCmd checks a form file without running it
var validateCmd = &cobra.Command{
	Use:   "validate <form.yaml>",
	Short: "Check a form file for mistakes",
	Long: `Parse a form file and report every problem found.

Checks unknown widgets and settings, missing choices, duplicate names,
malformed reask_unless patterns and jumps that point at unknown questions.
Near misses come with a suggestion.`,
	Example: `  impromptu validate lunch.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	printer := ui.NewPrinter(cmd.OutOrStdout())

	fm, err := loadForm(args[0])
	if err != nil {
		printer.PrintFailure("Form is invalid", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	def := fm.Definition()
	detached, jumps := 0, 0
	for _, q := range def.Questions {
		if q.Detached {
			detached++
		}
		jumps += len(q.Jumps)
	}

	title := def.Title
	if title == "" {
		title = args[0]
	}
	printer.PrintHeader(title, "impromptu validate "+args[0],
		ui.Param{Key: "Questions", Value: strconv.Itoa(len(def.Questions))},
		ui.Param{Key: "Detached", Value: strconv.Itoa(detached)},
		ui.Param{Key: "Jumps", Value: strconv.Itoa(jumps)},
	)
	printer.Newline()
	if unreachable := def.Unreachable(); len(unreachable) > 0 {
		printer.PrintWarning("Detached questions no jump inserts",
			ui.Detail{Key: "Never asked", Value: strings.Join(unreachable, ", ")})
		printer.Newline()
	}
	printer.PrintSuccess("Form is valid", ui.Detail{Key: "Order", Value: strings.Join(def.Names(), ", ")})
	return nil
}

// configCmd groups the config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Manage the impromptu configuration file.

The file sets the log level, the default output format and theme settings
applied to every question. Environment variables prefixed with IMPROMPTU_
override it, for example IMPROMPTU_OUTPUT_FORMAT=json.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Example: `  impromptu config init
  impromptu config init --config ./impromptu.yaml --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file without asking")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	printer := ui.NewPrinter(cmd.OutOrStdout())

	path, err := targetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		warnings := []string{
			"A configuration file already exists at " + path,
			"Its settings will be replaced with the defaults",
		}
		if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Overwrite configuration", warnings) {
			return nil
		}
	}

	if err := config.Default().Save(path); err != nil {
		printer.PrintFailure("Cannot write configuration", err)
		return fmt.Errorf("failed to save config: %w", err)
	}
	printer.PrintSuccess("Configuration written", ui.Detail{Key: "Path", Value: path})
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the file and environment
variables have been merged.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	path, err := targetConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", path)
	_, err = out.Write(data)
	return err
}

func targetConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return path, nil
}
