package lint

import (
	"context"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// Context provides everything a rule needs to check one document.
//
// Design note: Context stores context.Context as a field (Ctx) rather
// than passing it as a method parameter. Context is a short-lived
// parameter object created per rule invocation, so this keeps the
// Rule interface small while still supporting cancellation.
type Context struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Facts is the immutable per-document fact cache.
	Facts *facts.Cache

	// Doc is the underlying document (convenience alias for Facts.Doc).
	Doc *mdtext.Document

	// Flavor is the active flavor for this document.
	Flavor flavor.Flavor

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig

	// ruleID keys flavor allow lookups.
	ruleID string
}

// NewContext creates a Context for one rule run against a fact cache.
func NewContext(ctx context.Context, cache *facts.Cache, ruleCfg *config.RuleConfig, ruleID string) *Context {
	var doc *mdtext.Document
	var fl flavor.Flavor
	if cache != nil {
		doc = cache.Doc
		fl = cache.Flavor
	}
	return &Context{
		Ctx:    ctx,
		Facts:  cache,
		Doc:    doc,
		Flavor: fl,
		Config: ruleCfg,
		ruleID: ruleID,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *Context) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Allowed reports whether the active flavor tells this rule to accept
// the construct and suppress violations on its instances.
func (rc *Context) Allowed(c flavor.Construct) bool {
	return rc.Flavor.Allows(rc.ruleID, c)
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *Context) Option(key string, defaultValue any) any {
	if rc.Config == nil || rc.Config.Options == nil {
		return defaultValue
	}
	if v, ok := rc.Config.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *Context) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *Context) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *Context) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *Context) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []interface{} from YAML parsing.
	if iface, ok := v.([]interface{}); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
