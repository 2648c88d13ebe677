package lint

import (
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/flavor"
)

// Rule defines the interface that all lint rules must implement.
//
// Rules are fail-open: neither ShouldSkip nor Check returns an error.
// A rule that cannot make sense of its input reports nothing.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MD001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["style", "heading"]).
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// ShouldSkip reports whether the rule has no work to do for this
	// document. It must be conservative: returning false is always
	// safe, returning true requires certainty that Check would find
	// nothing.
	ShouldSkip(rc *Context) bool

	// Check executes the rule and returns its violations in document
	// order.
	Check(rc *Context) []Violation
}

// ContentFixer is implemented by rules whose fix rewrites whole content
// rather than proposing span edits. The fix engine falls back to content
// fixers when every collected edit in a pass conflicts.
type ContentFixer interface {
	// FixContent returns the rewritten content. Returning the input
	// unchanged means the rule has nothing to fix.
	FixContent(content []byte, fl flavor.Flavor) []byte
}

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// ShouldSkip defaults to never skipping. Rules with a cheap presence
// predicate should override it.
func (r *BaseRule) ShouldSkip(_ *Context) bool {
	return false
}

// Check must be overridden by concrete rule implementations.
// The default implementation returns no violations.
func (r *BaseRule) Check(_ *Context) []Violation {
	return nil
}
