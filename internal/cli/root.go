// Package cli provides the Cobra command structure for mdfix.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdfix",
		Short: "A self-fixing Markdown linter",
		Long: `mdfix checks Markdown documents for style and syntax issues and can
rewrite them in place. It understands several dialects (GFM, MkDocs,
Obsidian, Quarto) and suppresses findings that are legitimate syntax
in the selected dialect.

Documents are given as explicit paths, or piped on stdin.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
