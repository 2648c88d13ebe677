// Package flavor models Markdown dialect variants. A flavor carries two
// lookup tables consulted uniformly across the pipeline:
//
//   - recognizer toggles, consumed by the fact cache and the tokenizer
//     adapter to decide which constructs exist in this dialect, and
//   - an allow table keyed by (rule ID, construct), consulted by rules
//     before reporting: an allow-listed construct suppresses that one
//     instance without disabling the rule.
//
// Flavors are immutable values; deriving a variant returns a copy.
package flavor

// Name identifies a Markdown dialect.
type Name string

// Built-in flavor names.
const (
	Default  Name = "default"
	GFM      Name = "gfm"
	MkDocs   Name = "mkdocs"
	Obsidian Name = "obsidian"
	Quarto   Name = "quarto"
)

// Construct identifies a Markdown construct kind for recognizer toggles
// and allow-table keys.
type Construct string

// Construct kinds.
const (
	ConstructTable         Construct = "table"
	ConstructStrikethrough Construct = "strikethrough"
	ConstructTaskList      Construct = "task_list"
	ConstructAutolink      Construct = "autolink"
	ConstructFrontMatter   Construct = "front_matter"
	ConstructAdmonition    Construct = "admonition"
	ConstructWikiLink      Construct = "wiki_link"
	ConstructMathBlock     Construct = "math_block"
	ConstructFencedDiv     Construct = "fenced_div"
	ConstructInlineHTML    Construct = "inline_html"
	ConstructBareURL       Construct = "bare_url"
	ConstructEmphasis      Construct = "emphasis"
	ConstructCodeFence     Construct = "code_fence"
	ConstructHeading       Construct = "heading"
)

type allowKey struct {
	rule      string
	construct Construct
}

// Flavor is one dialect's recognizer and allow tables.
type Flavor struct {
	name       Name
	recognized map[Construct]bool
	allowed    map[allowKey]bool
}

// Name returns the flavor's identifier.
func (f Flavor) Name() Name {
	return f.name
}

// Recognizes returns true when the dialect treats the construct as part
// of the language. Unrecognized constructs produce no structural facts.
func (f Flavor) Recognizes(c Construct) bool {
	return f.recognized[c]
}

// Allows returns true when the (rule, construct) pair is allow-listed:
// the rule must suppress that instance.
func (f Flavor) Allows(ruleID string, c Construct) bool {
	return f.allowed[allowKey{rule: ruleID, construct: c}]
}

// Override is one allow-table entry.
type Override struct {
	Rule      string    `yaml:"rule"`
	Construct Construct `yaml:"construct"`
	Allow     bool      `yaml:"allow"`
}

// WithOverrides returns a copy of the flavor with the given entries
// applied on top of its built-in allow table. The receiver is unchanged.
func (f Flavor) WithOverrides(overrides []Override) Flavor {
	out := Flavor{
		name:       f.name,
		recognized: f.recognized,
		allowed:    make(map[allowKey]bool, len(f.allowed)+len(overrides)),
	}
	for k, v := range f.allowed {
		out.allowed[k] = v
	}
	for _, o := range overrides {
		key := allowKey{rule: o.Rule, construct: o.Construct}
		if o.Allow {
			out.allowed[key] = true
		} else {
			delete(out.allowed, key)
		}
	}
	return out
}

// WithRecognized returns a copy of the flavor with one recognizer toggle
// changed. Used by callers defining custom dialect variants.
func (f Flavor) WithRecognized(c Construct, on bool) Flavor {
	out := Flavor{
		name:       f.name,
		recognized: make(map[Construct]bool, len(f.recognized)+1),
		allowed:    f.allowed,
	}
	for k, v := range f.recognized {
		out.recognized[k] = v
	}
	out.recognized[c] = on
	return out
}
