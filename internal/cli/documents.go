package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// stdinName labels the stdin pseudo-document in output.
const stdinName = "<stdin>"

// commonFlags are shared between the check and fix commands.
type commonFlags struct {
	flavor          string
	flavorOverrides string
	enable          []string
	disable         []string
	jobs            int
	strict          bool
	noContext       bool
}

func addCommonFlags(cmd *cobra.Command, flags *commonFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", "default",
		"Markdown flavor: default, gfm, mkdocs, obsidian, quarto")
	cmd.Flags().StringVar(&flags.flavorOverrides, "flavor-overrides", "",
		"path to a YAML file with per-flavor rule suppression entries")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
}

// readDocuments resolves the command arguments into in-memory documents.
// No arguments, or the single argument "-", reads stdin.
func readDocuments(cmd *cobra.Command, args []string) ([]runner.Document, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []runner.Document{{Name: stdinName, Content: content}}, nil
	}

	docs := make([]runner.Document, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, runner.Document{Name: path, Content: content})
	}
	return docs, nil
}

// resolveFlavor picks the flavor by name, layering override entries from
// a YAML file when one is given.
func resolveFlavor(flags *commonFlags) (flavor.Flavor, error) {
	name := flavor.Name(flags.flavor)

	if flags.flavorOverrides == "" {
		fl, ok := flavor.Lookup(name)
		if !ok {
			return flavor.Flavor{}, fmt.Errorf("unknown flavor %q (known: %s)", flags.flavor, knownFlavors())
		}
		return fl, nil
	}

	data, err := os.ReadFile(flags.flavorOverrides)
	if err != nil {
		return flavor.Flavor{}, fmt.Errorf("read flavor overrides: %w", err)
	}
	flavors, err := flavor.ParseOverrides(data)
	if err != nil {
		return flavor.Flavor{}, err
	}
	fl, ok := flavors[name]
	if !ok {
		return flavor.Flavor{}, fmt.Errorf("unknown flavor %q (known: %s)", flags.flavor, knownFlavors())
	}
	return fl, nil
}

func knownFlavors() string {
	names := flavor.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// buildRuleSet maps common flags onto a rule set.
func buildRuleSet(flags *commonFlags) *config.RuleSet {
	rs := config.NewRuleSet()
	rs.Flavor = flags.flavor
	rs.Enable = flags.enable
	rs.Disable = flags.disable
	return rs
}

// sourceLine extracts the 1-based line from raw content for context
// display, without the trailing newline.
func sourceLine(content []byte, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(string(content), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
