package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/pkg/lint"
	_ "github.com/yaklabco/mdfix/pkg/lint/rules" // register built-in rules
)

func newRulesCommand() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List the built-in lint rules with their IDs, names, tags and
whether each rule supports automatic fixing.

Examples:
  mdfix rules                 # List every rule
  mdfix rules --tag heading   # List heading rules only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, tag)
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "only list rules carrying this tag")
	return cmd
}

func runRules(cmd *cobra.Command, tag string) error {
	rules := lint.DefaultRegistry.Rules()
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEVERITY\tFIX\tTAGS")

	listed := 0
	for _, rule := range rules {
		if tag != "" && !hasTag(rule, tag) {
			continue
		}
		fixable := ""
		if rule.CanFix() {
			fixable = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rule.ID(), rule.Name(), rule.DefaultSeverity(), fixable, strings.Join(rule.Tags(), ","))
		listed++
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("print rules: %w", err)
	}

	if tag != "" && listed == 0 {
		return fmt.Errorf("no rules carry tag %q", tag)
	}
	return nil
}

func hasTag(rule lint.Rule, tag string) bool {
	for _, t := range rule.Tags() {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
