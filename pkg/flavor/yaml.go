package flavor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// overridesDoc is the YAML shape for an override file: a map from flavor
// name to its extra allow-table entries.
//
//	gfm:
//	  - rule: MD033
//	    construct: inline_html
//	    allow: true
type overridesDoc map[Name][]Override

// ParseOverrides decodes per-flavor allow-table entries from YAML and
// returns the resulting flavor set: every built-in flavor, with the
// listed entries layered on. Unknown flavor names are rejected so a typo
// does not silently produce a default-flavored table.
func ParseOverrides(data []byte) (map[Name]Flavor, error) {
	var doc overridesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse flavor overrides: %w", err)
	}

	out := make(map[Name]Flavor, len(builtins()))
	for name, f := range builtins() {
		out[name] = f
	}

	for name, overrides := range doc {
		base, ok := out[name]
		if !ok {
			return nil, fmt.Errorf("parse flavor overrides: unknown flavor %q", name)
		}
		out[name] = base.WithOverrides(overrides)
	}

	return out, nil
}
