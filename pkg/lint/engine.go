package lint

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// Tokenizer produces the token stream the fact cache is built from.
type Tokenizer interface {
	Tokenize(ctx context.Context, content []byte) ([]mdtext.Token, error)
}

// Result holds the outcome of one sweep over a document.
type Result struct {
	// Facts is the fact cache the sweep ran against.
	Facts *facts.Cache

	// Violations contains every finding, sorted by span start, span
	// end, then rule ID.
	Violations []Violation
}

// HasIssues returns true if the sweep found anything.
func (r *Result) HasIssues() bool {
	return len(r.Violations) > 0
}

// FixableCount returns the number of violations carrying an edit.
func (r *Result) FixableCount() int {
	count := 0
	for i := range r.Violations {
		if r.Violations[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates tokenizing, fact building, and rule execution.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry

	// Tokenizer feeds the fact cache. A nil Tokenizer or a tokenize
	// error degrades to an empty token stream.
	Tokenizer Tokenizer
}

// NewEngine creates a new Engine with the given tokenizer and registry.
func NewEngine(tok Tokenizer, registry *Registry) *Engine {
	return &Engine{
		Registry:  registry,
		Tokenizer: tok,
	}
}

// Check runs one sweep: build facts for the content, then run every
// enabled rule against them. Rules run concurrently; the returned
// violation order does not depend on scheduling.
func (e *Engine) Check(
	ctx context.Context,
	content []byte,
	rs *config.RuleSet,
	fl flavor.Flavor,
) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("check cancelled: %w", err)
	}

	var tokens []mdtext.Token
	if e.Tokenizer != nil {
		// Tokenizer failures degrade to linting without token facts.
		tokens, _ = e.Tokenizer.Tokenize(ctx, content)
	}

	cache := facts.Build(content, tokens, fl)
	resolved := ResolveRules(e.Registry, rs)

	perRule := make([][]Violation, len(resolved))
	g, gctx := errgroup.WithContext(ctx)
	for i, rr := range resolved {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perRule[i] = runRule(gctx, rr, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check cancelled: %w", err)
	}

	result := &Result{Facts: cache}
	for i, rr := range resolved {
		for _, v := range perRule[i] {
			v.Severity = rr.Severity
			if v.RuleName == "" {
				v.RuleName = rr.Rule.Name()
			}
			result.Violations = append(result.Violations, v)
		}
	}

	sortViolations(result.Violations)
	return result, nil
}

// runRule executes one rule fail-open: skip first, then check.
func runRule(ctx context.Context, rr ResolvedRule, cache *facts.Cache) []Violation {
	rc := NewContext(ctx, cache, rr.Config, rr.Rule.ID())
	if rr.Rule.ShouldSkip(rc) {
		return nil
	}
	return rr.Rule.Check(rc)
}

// sortViolations orders by span start, then span end, then rule ID.
// Identical spans resolve to the lexically smaller rule, which also
// decides which edit wins when spans collide during fixing.
func sortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := &violations[i], &violations[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		return a.RuleID < b.RuleID
	})
}
