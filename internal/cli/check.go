package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/lint"
	_ "github.com/yaklabco/mdfix/pkg/lint/rules" // register built-in rules
	goldmarkparser "github.com/yaklabco/mdfix/pkg/parser/goldmark"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// ErrIssuesFound signals a non-zero exit without an error message.
var ErrIssuesFound = errors.New("issues found")

func newCheckCommand() *cobra.Command {
	flags := &commonFlags{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check Markdown documents",
		Long: `Check Markdown documents for style and syntax issues.

Reads the given files, or stdin when no files are named.

Examples:
  mdfix check README.md             # Check a single file
  mdfix check docs/*.md             # Check several files
  cat notes.md | mdfix check        # Check stdin
  mdfix check --flavor gfm doc.md   # Check as GitHub Flavored Markdown
  mdfix check --strict doc.md       # Treat warnings as errors`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addCommonFlags(cmd, flags)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *commonFlags) error {
	docs, err := readDocuments(cmd, args)
	if err != nil {
		return err
	}
	fl, err := resolveFlavor(flags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine := lint.NewEngine(goldmarkparser.New(fl), lint.DefaultRegistry)
	batch := runner.New(lint.NewPipeline(engine))

	result, err := batch.Run(ctx, docs, runner.Options{
		RuleSet: buildRuleSet(flags),
		Flavor:  fl,
		Jobs:    flags.jobs,
	})
	if err != nil {
		return fmt.Errorf("check run: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	out := cmd.OutOrStdout()
	renderOutcomes(out, cmd.ErrOrStderr(), styles, docs, result, !flags.noContext)
	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}
