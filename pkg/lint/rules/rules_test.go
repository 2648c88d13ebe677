package rules

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
	"github.com/yaklabco/mdfix/pkg/parser/goldmark"
)

// buildContext tokenizes the input, builds the fact cache, and wraps
// both in a rule context.
func buildContext(t *testing.T, input string, fl flavor.Flavor, opts map[string]any, ruleID string) *lint.Context {
	t.Helper()

	tokens, err := goldmark.New(fl).Tokenize(context.Background(), []byte(input))
	require.NoError(t, err)

	cache := facts.Build([]byte(input), tokens, fl)

	var ruleCfg *config.RuleConfig
	if opts != nil {
		ruleCfg = &config.RuleConfig{Options: opts}
	}
	return lint.NewContext(context.Background(), cache, ruleCfg, ruleID)
}

// buildContextFromTokens is buildContext for callers that already hold
// a token stream, so a document is only tokenized once per flavor.
func buildContextFromTokens(t *testing.T, input string, tokens []mdtext.Token, fl flavor.Flavor, ruleID string) *lint.Context {
	t.Helper()

	cache := facts.Build([]byte(input), tokens, fl)
	return lint.NewContext(context.Background(), cache, nil, ruleID)
}

// checkRule runs a single rule against the input, honoring ShouldSkip.
func checkRule(t *testing.T, rule lint.Rule, input string, fl flavor.Flavor, opts map[string]any) []lint.Violation {
	t.Helper()

	rc := buildContext(t, input, fl, opts, rule.ID())
	if rule.ShouldSkip(rc) {
		return nil
	}
	return rule.Check(rc)
}

// applyRuleFixes repeatedly applies a single rule's fixes until the
// content stops changing, mirroring the fix pipeline for one rule.
func applyRuleFixes(t *testing.T, rule lint.Rule, input string, fl flavor.Flavor, opts map[string]any) string {
	t.Helper()

	content := []byte(input)
	for pass := 0; pass < 10; pass++ {
		rc := buildContext(t, string(content), fl, opts, rule.ID())
		if rule.ShouldSkip(rc) {
			break
		}

		var edits []fix.Edit
		for _, v := range rule.Check(rc) {
			if v.Edit != nil {
				edits = append(edits, *v.Edit)
			}
		}
		if len(edits) == 0 {
			fixer, ok := rule.(lint.ContentFixer)
			if !ok {
				break
			}
			rewritten := fixer.FixContent(content, fl)
			if bytes.Equal(rewritten, content) {
				break
			}
			content = rewritten
			continue
		}

		committed, _ := fix.Merge(edits)
		content = fix.Apply(content, committed)
	}
	return string(content)
}

func defaultFlavor() flavor.Flavor {
	return flavor.Get(flavor.Default)
}

func gfmFlavor() flavor.Flavor {
	return flavor.Get(flavor.GFM)
}
