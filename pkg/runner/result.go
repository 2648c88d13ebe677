package runner

import (
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint"
)

// Outcome is the result for one document.
type Outcome struct {
	// Name is the document name as given.
	Name string

	// Violations are the findings for the document. For fix runs these
	// are the findings remaining after the final pass.
	Violations []lint.Violation

	// Fix carries the fix-loop result for fix runs, nil otherwise.
	Fix *lint.FixResult

	// Err is set when the document could not be processed at all.
	Err error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// Documents is the batch size.
	Documents int

	// Processed is the number of documents that completed.
	Processed int

	// Errored is the number of documents that failed outright.
	Errored int

	// WithIssues is the number of documents with at least one violation.
	WithIssues int

	// Violations is the total violation count across the batch.
	Violations int

	// Fixable is the number of violations carrying an edit.
	Fixable int

	// BySeverity maps severity names to violation counts.
	BySeverity map[string]int

	// Modified is the number of documents changed by fixes.
	Modified int

	// EditsApplied is the total edit count across all fix passes.
	EditsApplied int

	// NotConverged is the number of documents whose fix loop hit the
	// pass cap with applicable edits outstanding.
	NotConverged int
}

// Result is the overall batch result. Outcomes hold the input order
// regardless of worker scheduling.
type Result struct {
	Outcomes []Outcome
	Stats    Stats
}

// HasFailures reports whether any error-severity violations occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.BySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any violations were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.Violations > 0
}

func newStats(documents int) Stats {
	return Stats{
		Documents:  documents,
		BySeverity: make(map[string]int),
	}
}

// accumulate folds one outcome into the aggregate stats.
func (s *Stats) accumulate(out Outcome) {
	if out.Err != nil {
		s.Errored++
		return
	}
	s.Processed++

	if len(out.Violations) > 0 {
		s.WithIssues++
	}
	s.Violations += len(out.Violations)
	for i := range out.Violations {
		v := &out.Violations[i]
		if v.HasFix() {
			s.Fixable++
		}
		severity := string(v.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		s.BySeverity[severity]++
	}

	if out.Fix == nil {
		return
	}
	if out.Fix.Modified {
		s.Modified++
	}
	s.EditsApplied += out.Fix.EditsApplied
	if !out.Fix.Converged {
		s.NotConverged++
	}
}
