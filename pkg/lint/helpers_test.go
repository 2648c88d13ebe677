package lint_test

import (
	"context"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// mockTokenizer implements lint.Tokenizer for testing.
type mockTokenizer struct {
	tokenizeFunc func(ctx context.Context, content []byte) ([]mdtext.Token, error)
}

func (m *mockTokenizer) Tokenize(ctx context.Context, content []byte) ([]mdtext.Token, error) {
	if m.tokenizeFunc != nil {
		return m.tokenizeFunc(ctx, content)
	}
	return nil, nil
}

// stubRule is a configurable test rule.
type stubRule struct {
	lint.BaseRule
	skip    bool
	checked bool
	check   func(rc *lint.Context) []lint.Violation
}

func (r *stubRule) ShouldSkip(*lint.Context) bool {
	return r.skip
}

func (r *stubRule) Check(rc *lint.Context) []lint.Violation {
	r.checked = true
	if r.check == nil {
		return nil
	}
	return r.check(rc)
}

// spanRule flags a fixed span with an optional replacement edit.
func spanRule(id string, start, end int, replacement *string) *stubRule {
	return &stubRule{
		BaseRule: lint.NewBaseRule(id, "stub-"+id, "stub rule", nil, replacement != nil),
		check: func(rc *lint.Context) []lint.Violation {
			if end > len(rc.Doc.Content) {
				return nil
			}
			b := lint.NewViolation(id, mdtext.NewSpan(start, end), "stub finding")
			if replacement != nil {
				b = b.WithEdit(fix.Replace(start, end, *replacement))
			}
			return []lint.Violation{b.Build(rc.Doc)}
		},
	}
}

func strptr(s string) *string { return &s }

func defaultFlavor() flavor.Flavor {
	return flavor.Get(flavor.Default)
}

func fixRuleSet() *config.RuleSet {
	rs := config.NewRuleSet()
	rs.Fix = true
	return rs
}
