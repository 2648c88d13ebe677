// Package config defines the resolved configuration types the lint core
// consumes. These are pure data structures: discovering, loading, and
// merging configuration files is the caller's concern.
package config

// Severity represents the severity level of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true for a known severity value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
// Pointer fields distinguish "unset" from an explicit value.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	AutoFix  *bool          `yaml:"auto_fix"`
	Options  map[string]any `yaml:"options"`
}

// RuleSet is the resolved enabled-rule map supplied by the caller for one
// run. It is read-only for the run's duration; nothing in the core
// mutates it.
type RuleSet struct {
	// Flavor names the Markdown dialect to lint under.
	Flavor string `yaml:"flavor"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules"`

	// Enable lists rule IDs to force-enable regardless of defaults.
	Enable []string `yaml:"enable"`

	// Disable lists rule IDs to force-disable. Disable wins over Enable.
	Disable []string `yaml:"disable"`

	// Fix enables collecting edits during the sweep.
	Fix bool `yaml:"-"`

	// FixRules, when non-empty, limits edit collection to these rule IDs.
	FixRules []string `yaml:"-"`

	// MaxPasses caps the fix engine's pass loop. Zero means the default.
	MaxPasses int `yaml:"max_passes"`
}

// NewRuleSet returns a RuleSet with defaults: every registered rule
// enabled, default flavor, fixing off.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		Flavor: "default",
		Rules:  make(map[string]RuleConfig),
	}
}

// Option returns a rule option value, or the default when unset.
func (rc *RuleConfig) Option(key string, def any) any {
	if rc == nil || rc.Options == nil {
		return def
	}
	if v, ok := rc.Options[key]; ok {
		return v
	}
	return def
}
