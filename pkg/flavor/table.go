package flavor

// The built-in flavor table. Every entry beyond Default layers on top of
// the GFM recognizer set, since the documentation-generator and
// knowledge-base dialects all extend GFM in practice.

func recognizedDefault() map[Construct]bool {
	return map[Construct]bool{
		ConstructFrontMatter: true,
		ConstructEmphasis:    true,
		ConstructCodeFence:   true,
		ConstructHeading:     true,
		ConstructInlineHTML:  true,
		ConstructBareURL:     true,
	}
}

func recognizedGFM() map[Construct]bool {
	m := recognizedDefault()
	m[ConstructTable] = true
	m[ConstructStrikethrough] = true
	m[ConstructTaskList] = true
	m[ConstructAutolink] = true
	return m
}

func builtins() map[Name]Flavor {
	gfm := recognizedGFM()

	mkdocs := recognizedGFM()
	mkdocs[ConstructAdmonition] = true

	obsidian := recognizedGFM()
	obsidian[ConstructWikiLink] = true
	obsidian[ConstructMathBlock] = true

	quarto := recognizedGFM()
	quarto[ConstructMathBlock] = true
	quarto[ConstructFencedDiv] = true

	return map[Name]Flavor{
		Default: {
			name:       Default,
			recognized: recognizedDefault(),
			allowed:    map[allowKey]bool{},
		},
		GFM: {
			name:       GFM,
			recognized: gfm,
			allowed:    map[allowKey]bool{},
		},
		MkDocs: {
			name:       MkDocs,
			recognized: mkdocs,
			allowed: map[allowKey]bool{
				// MkDocs themes rely on raw HTML and admonition bodies
				// that look like indented code.
				{rule: "MD033", construct: ConstructInlineHTML}: true,
				{rule: "MD046", construct: ConstructAdmonition}: true,
			},
		},
		Obsidian: {
			name:       Obsidian,
			recognized: obsidian,
			allowed: map[allowKey]bool{
				// [[wiki links]] are neither empty links nor dangling
				// reference labels in a vault.
				{rule: "MD042", construct: ConstructWikiLink}: true,
				{rule: "MD052", construct: ConstructWikiLink}: true,
			},
		},
		Quarto: {
			name:       Quarto,
			recognized: quarto,
			allowed: map[allowKey]bool{
				// TeX delimiters inside $$ blocks are not emphasis.
				{rule: "MD037", construct: ConstructMathBlock}: true,
				{rule: "MD049", construct: ConstructMathBlock}: true,
			},
		},
	}
}

// Lookup returns the named built-in flavor.
func Lookup(name Name) (Flavor, bool) {
	f, ok := builtins()[name]
	return f, ok
}

// Get returns the named flavor, falling back to Default for unknown
// names. Dialect selection degrades rather than failing.
func Get(name Name) Flavor {
	if f, ok := Lookup(name); ok {
		return f
	}
	return builtins()[Default]
}

// Names returns the built-in flavor names in stable order.
func Names() []Name {
	return []Name{Default, GFM, MkDocs, Obsidian, Quarto}
}
