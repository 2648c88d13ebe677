package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/lint"
	_ "github.com/yaklabco/mdfix/pkg/lint/rules" // register built-in rules
	goldmarkparser "github.com/yaklabco/mdfix/pkg/parser/goldmark"
	"github.com/yaklabco/mdfix/pkg/runner"
)

type fixFlags struct {
	commonFlags
	fixRules  []string
	maxPasses int
	dryRun    bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [files...]",
		Short: "Fix Markdown documents in place",
		Long: `Check Markdown documents and apply automatic fixes.

Files are rewritten in place. When reading from stdin the fixed
content is written to stdout and findings go to stderr, so the
command composes in a pipe.

Examples:
  mdfix fix README.md                  # Fix a file in place
  mdfix fix --dry-run docs/*.md        # Preview changes as diffs
  mdfix fix --fix-rules MD009 doc.md   # Only fix trailing spaces
  cat notes.md | mdfix fix > clean.md  # Fix a stream`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	addCommonFlags(cmd, &flags.commonFlags)
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "only apply fixes from these rules (all findings still reported)")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", lint.DefaultMaxPasses, "maximum fix passes per document")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "preview changes as unified diffs without writing files")

	return cmd
}

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	streaming := len(args) == 0 || (len(args) == 1 && args[0] == "-")

	docs, err := readDocuments(cmd, args)
	if err != nil {
		return err
	}
	fl, err := resolveFlavor(&flags.commonFlags)
	if err != nil {
		return err
	}

	rs := buildRuleSet(&flags.commonFlags)
	rs.Fix = true
	rs.FixRules = flags.fixRules
	rs.MaxPasses = flags.maxPasses

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	engine := lint.NewEngine(goldmarkparser.New(fl), lint.DefaultRegistry)
	batch := runner.New(lint.NewPipeline(engine))

	result, err := batch.Run(ctx, docs, runner.Options{
		RuleSet: rs,
		Flavor:  fl,
		Fix:     true,
		Jobs:    flags.jobs,
	})
	if err != nil {
		return fmt.Errorf("fix run: %w", err)
	}

	errOut := cmd.ErrOrStderr()

	// Findings and the summary go to stderr when streaming so stdout
	// stays clean fixed content.
	findingsOut := cmd.OutOrStdout()
	if streaming {
		findingsOut = errOut
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, findingsOut))

	renderOutcomes(findingsOut, errOut, styles, docs, result, !flags.noContext)
	fmt.Fprint(findingsOut, styles.FormatSummaryOneLine(result.Stats))

	switch {
	case flags.dryRun:
		renderDiffs(cmd.OutOrStdout(), docs, result)
	case streaming:
		outcome := result.Outcomes[0]
		if outcome.Err == nil && outcome.Fix != nil {
			if _, err := cmd.OutOrStdout().Write(outcome.Fix.Output); err != nil {
				return fmt.Errorf("write fixed output: %w", err)
			}
		}
	default:
		if err := writeFixedFiles(result); err != nil {
			return err
		}
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code}
	}
	return nil
}

// renderDiffs previews what writing would change, one unified diff per
// modified document.
func renderDiffs(out io.Writer, docs []runner.Document, result *runner.Result) {
	for i, outcome := range result.Outcomes {
		if outcome.Err != nil || outcome.Fix == nil || !outcome.Fix.Modified {
			continue
		}
		if d := fix.NewDiff(outcome.Name, docs[i].Content, outcome.Fix.Output); d != nil {
			fmt.Fprintln(out, d.String())
		}
	}
}

// writeFixedFiles rewrites every modified document, keeping each
// file's existing permissions.
func writeFixedFiles(result *runner.Result) error {
	log := logging.Default()

	for _, outcome := range result.Outcomes {
		if outcome.Err != nil || outcome.Fix == nil || !outcome.Fix.Modified {
			continue
		}

		mode := fs.FileMode(0o644)
		if info, err := os.Stat(outcome.Name); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(outcome.Name, outcome.Fix.Output, mode); err != nil {
			return fmt.Errorf("write %s: %w", outcome.Name, err)
		}

		log.Debug("wrote fixed file",
			logging.FieldPath, outcome.Name,
			logging.FieldEdits, outcome.Fix.EditsApplied)
	}
	return nil
}
