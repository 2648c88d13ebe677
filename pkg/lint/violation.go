// Package lint provides the rule engine, violations, and registry for mdfix.
package lint

import (
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// Violation represents a single rule finding in a document.
type Violation struct {
	// RuleID is the identifier of the rule that produced this violation.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "no-trailing-spaces").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the violation.
	Severity config.Severity

	// Span is the byte extent of the offending text.
	Span mdtext.Span

	// StartLine and StartColumn are the 1-based position of Span.Start.
	StartLine   int
	StartColumn int

	// EndLine and EndColumn are the 1-based position of Span.End.
	EndLine   int
	EndColumn int

	// Edit is the proposed fix, nil when the rule cannot fix this finding.
	Edit *fix.Edit
}

// HasFix returns true if this violation carries a fix edit.
func (v *Violation) HasFix() bool {
	return v.Edit != nil
}

// ViolationBuilder constructs Violation values fluently.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation for the given rule and span.
func NewViolation(ruleID string, span mdtext.Span, message string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			RuleID:  ruleID,
			Message: message,
			Span:    span,
		},
	}
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithEdit attaches a fix edit.
func (b *ViolationBuilder) WithEdit(e fix.Edit) *ViolationBuilder {
	b.v.Edit = &e
	return b
}

// WithReplacement attaches a fix that replaces the violation span.
func (b *ViolationBuilder) WithReplacement(text string) *ViolationBuilder {
	b.v.Edit = &fix.Edit{Span: b.v.Span, NewText: text}
	return b
}

// WithDeletion attaches a fix that deletes the violation span.
func (b *ViolationBuilder) WithDeletion() *ViolationBuilder {
	return b.WithReplacement("")
}

// Build resolves line and column positions against the document and
// returns the finished violation.
func (b *ViolationBuilder) Build(doc *mdtext.Document) Violation {
	if doc != nil {
		start := doc.PositionAt(b.v.Span.Start)
		end := doc.PositionAt(b.v.Span.End)
		b.v.StartLine = start.Line
		b.v.StartColumn = start.Column
		b.v.EndLine = end.Line
		b.v.EndColumn = end.Column
	}
	return b.v
}
