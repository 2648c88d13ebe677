package lint

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
)

// DefaultMaxPasses caps the fix loop. Rules whose fixes feed each other
// converge well inside this bound; hitting it is reported as
// non-convergence, not as an error.
const DefaultMaxPasses = 10

// FixResult contains the outcome of running the fix loop on one document.
type FixResult struct {
	// Output is the final content. Equal to the input when nothing was
	// fixed.
	Output []byte

	// Violations are the findings remaining after the final pass.
	Violations []Violation

	// Passes is the number of sweeps performed, including the final
	// verification sweep.
	Passes int

	// EditsApplied is the total number of edits applied across all passes.
	EditsApplied int

	// Deferred is the number of edits set aside in the last applying
	// pass because they overlapped a committed edit.
	Deferred int

	// Converged is false when the pass cap was reached with fixable
	// violations still outstanding.
	Converged bool

	// Modified is true if Output differs from the input.
	Modified bool
}

// Pipeline runs the multi-pass fix loop over in-memory content.
type Pipeline struct {
	// Engine is the lint engine used for sweeps.
	Engine *Engine
}

// NewPipeline creates a pipeline around an engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// Fix repeatedly sweeps and applies committed edits until a sweep
// produces no applicable edits, applying them leaves the content
// byte-identical, or the pass cap is reached.
//
// Each pass:
//  1. Run the engine on the current content.
//  2. Collect edits from violations of auto-fix enabled rules.
//  3. Merge: commit non-overlapping edits, defer the rest.
//  4. If nothing commits, let content-fixer rules rewrite wholesale.
//  5. Apply committed edits and go again.
//
// Deferred edits are never applied against stale offsets; the next
// pass recomputes them from fresh facts.
func (p *Pipeline) Fix(
	ctx context.Context,
	content []byte,
	rs *config.RuleSet,
	fl flavor.Flavor,
) (*FixResult, error) {
	logger := logging.FromContext(ctx)

	maxPasses := DefaultMaxPasses
	if rs != nil && rs.MaxPasses > 0 {
		maxPasses = rs.MaxPasses
	}

	original := content
	result := &FixResult{}
	var sweep *Result

	autofix := make(map[string]bool)
	for _, rr := range ResolveRules(p.Engine.Registry, rs) {
		if rr.AutoFix {
			autofix[rr.Rule.ID()] = true
		}
	}

	// stale is true when content changed after the stored sweep ran.
	stale := true

	for pass := 1; pass <= maxPasses; pass++ {
		var err error
		sweep, err = p.Engine.Check(ctx, content, rs, fl)
		if err != nil {
			return nil, fmt.Errorf("fix pass %d: %w", pass, err)
		}
		result.Passes = pass
		stale = false

		edits := collectEdits(sweep.Violations, autofix)
		if len(edits) == 0 {
			// No span edits. Rules that fix by rewriting whole content
			// get a chance before the loop settles.
			rewritten, changed := p.applyContentFixers(content, fl, activeFixers(sweep.Violations, autofix))
			if !changed {
				break
			}
			content = rewritten
			stale = true
			continue
		}

		committed, deferred := fix.Merge(edits)
		result.Deferred = len(deferred)

		logger.Debug("applying edits",
			logging.FieldPass, pass,
			logging.FieldEdits, len(committed),
			logging.FieldDeferred, len(deferred))

		prev := content
		content = fix.Apply(content, committed)
		result.EditsApplied += len(committed)
		stale = true

		// Edits that rewrite spans to their existing text leave the
		// content byte-identical; re-sweeping it can only repeat them.
		if bytes.Equal(content, prev) {
			break
		}
	}

	if stale || sweep == nil {
		var err error
		sweep, err = p.Engine.Check(ctx, content, rs, fl)
		if err != nil {
			return nil, fmt.Errorf("final sweep: %w", err)
		}
	}

	result.Output = content
	result.Violations = sweep.Violations
	result.Modified = !bytes.Equal(original, content)
	// Converged means the final content has no applicable edits left.
	result.Converged = len(collectEdits(sweep.Violations, autofix)) == 0

	if !result.Converged {
		logger.Debug("fix loop stopped before converging",
			logging.FieldPasses, result.Passes,
			logging.FieldViolations, len(result.Violations))
	}

	return result, nil
}

// collectEdits gathers edits from violations of auto-fix enabled rules.
// Violations arrive sorted, so collection order is deterministic.
func collectEdits(violations []Violation, autofix map[string]bool) []fix.Edit {
	var edits []fix.Edit
	for i := range violations {
		if violations[i].Edit != nil && autofix[violations[i].RuleID] {
			edits = append(edits, *violations[i].Edit)
		}
	}
	return edits
}

// activeFixers returns the auto-fix enabled rule IDs that still have
// violations in this sweep. Content fixers only run for those.
func activeFixers(violations []Violation, autofix map[string]bool) map[string]bool {
	active := make(map[string]bool)
	for i := range violations {
		if autofix[violations[i].RuleID] {
			active[violations[i].RuleID] = true
		}
	}
	return active
}

// applyContentFixers runs the active ContentFixer rules over the content
// in rule ID order. Returns the result and whether anything changed.
func (p *Pipeline) applyContentFixers(content []byte, fl flavor.Flavor, active map[string]bool) ([]byte, bool) {
	changed := false
	for _, rule := range p.Engine.Registry.Rules() {
		if !active[rule.ID()] {
			continue
		}
		fixer, ok := rule.(ContentFixer)
		if !ok {
			continue
		}
		rewritten := fixer.FixContent(content, fl)
		if !bytes.Equal(rewritten, content) {
			content = rewritten
			changed = true
		}
	}
	return content, changed
}
