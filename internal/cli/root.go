package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mdkb/internal/vault"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	idColor      = color.New(color.FgYellow).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warnColor    = color.New(color.FgRed).SprintFunc()
)

// app carries state shared by every command of one root.
type app struct {
	load       EnvLoader
	jsonOutput bool
}

// NewRootCmd builds the mdkb command tree. Dependencies come from load, which is
// only called by commands that need the store.
func NewRootCmd(load EnvLoader) *cobra.Command {
	a := &app{load: load}

	root := &cobra.Command{
		Use:   "mdkb",
		Short: "Markdown knowledge base",
		Long: `mdkb imports markdown files into named knowledge bases, splits them into
heading-aware chunks and keeps everything in a local store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")

	root.AddCommand(newKBCmd(a))
	root.AddCommand(newDocCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newWatchCmd(a))
	return root
}

// runE loads the environment, runs fn and releases the store afterwards.
func (a *app) runE(fn func(cmd *cobra.Command, args []string, env *Env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := a.load()
		if err != nil {
			return err
		}
		defer func() {
			_ = env.Close()
		}()
		return fn(cmd, args, env)
	}
}

// printJSON writes v as indented JSON when --json is set and reports whether it did.
func (a *app) printJSON(cmd *cobra.Command, v any) (bool, error) {
	if !a.jsonOutput {
		return false, nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return true, fmt.Errorf("failed to encode output: %w", err)
	}
	printLine(cmd, string(data))
	return true, nil
}

// printf writes to stdout; cobra's own Printf falls back to stderr.
func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func printLine(cmd *cobra.Command, args ...any) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), args...)
}

func printHeader(cmd *cobra.Command, format string, args ...any) {
	_, _ = headerColor.Fprintf(cmd.OutOrStdout(), format, args...)
}

func newManager(env *Env) (*vault.Manager, error) {
	scanner, err := vault.NewScanner(env.Config.WatchPatterns)
	if err != nil {
		return nil, fmt.Errorf("invalid watch patterns: %w", err)
	}
	return vault.NewManager(env.Service, scanner), nil
}
