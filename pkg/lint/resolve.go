package lint

import "github.com/yaklabco/mdfix/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for violations from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run for a rule set.
// Returns only enabled rules, sorted by rule ID.
func ResolveRules(registry *Registry, rs *config.RuleSet) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, rs)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
// Precedence: rule defaults, then the rule's config block, then the
// Enable/Disable lists. Disable wins over Enable.
func resolveRule(rule Rule, rs *config.RuleSet) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
		Config:   nil,
	}

	if rs == nil {
		return rr
	}

	if ruleCfg, ok := rs.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil && config.Severity(*ruleCfg.Severity).IsValid() {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	for _, id := range rs.Enable {
		if id == rule.ID() {
			rr.Enabled = true
			break
		}
	}
	for _, id := range rs.Disable {
		if id == rule.ID() {
			rr.Enabled = false
			break
		}
	}

	// Limit edit collection when a fix-rules filter is present.
	if len(rs.FixRules) > 0 {
		rr.AutoFix = false
		for _, id := range rs.FixRules {
			if id == rule.ID() && rule.CanFix() {
				rr.AutoFix = true
				break
			}
		}
	}

	if !rs.Fix {
		rr.AutoFix = false
	}

	return rr
}
