package rules

import "github.com/yaklabco/mdfix/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Whitespace rules
	registry.Register(NewTrailingWhitespaceRule()) // MD009
	registry.Register(NewHardTabsRule())           // MD010
	registry.Register(NewMultipleBlankLinesRule()) // MD012
	registry.Register(NewFinalNewlineRule())       // MD047

	// Heading rules
	registry.Register(NewHeadingIncrementRule())      // MD001
	registry.Register(NewNoMissingSpaceATXRule())     // MD018
	registry.Register(NewNoMultipleSpaceATXRule())    // MD019
	registry.Register(NewHeadingBlankLinesRule())     // MD022
	registry.Register(NewHeadingStartLeftRule())      // MD023
	registry.Register(NewSingleH1Rule())              // MD025
	registry.Register(NewNoTrailingPunctuationRule()) // MD026

	// List rules
	registry.Register(NewUnorderedListStyleRule()) // MD004
	registry.Register(NewListIndentRule())         // MD005
	registry.Register(NewULIndentRule())           // MD007
	registry.Register(NewOrderedListPrefixRule())  // MD029
	registry.Register(NewListMarkerSpaceRule())    // MD030
	registry.Register(NewBlanksAroundListsRule())  // MD032

	// Blockquote rules
	registry.Register(NewBlockquoteSpaceRule()) // MD027
	registry.Register(NewBlankBlockquoteRule()) // MD028

	// Link and image rules
	registry.Register(NewReversedLinkRule())   // MD011
	registry.Register(NewNoBareURLsRule())     // MD034
	registry.Register(NewLinkSpacesRule())     // MD039
	registry.Register(NewEmptyLinkRule())      // MD042
	registry.Register(NewImageAltTextRule())   // MD045
	registry.Register(NewReferenceLinksRule()) // MD052

	// HR rules
	registry.Register(NewHRStyleRule()) // MD035

	// Emphasis rules
	registry.Register(NewNoEmphasisAsHeadingRule()) // MD036
	registry.Register(NewNoSpaceInEmphasisRule())   // MD037
	registry.Register(NewEmphasisStyleRule())       // MD049
	registry.Register(NewStrongStyleRule())         // MD050

	// Code block rules
	registry.Register(NewCommandsShowOutputRule())  // MD014
	registry.Register(NewBlanksAroundFencesRule())  // MD031
	registry.Register(NewNoSpaceInCodeRule())       // MD038
	registry.Register(NewFencedCodeLanguageRule())  // MD040
	registry.Register(NewCodeBlockStyleRule())      // MD046
	registry.Register(NewCodeFenceStyleRule())      // MD048

	// HTML rules
	registry.Register(NewInlineHTMLRule()) // MD033

	// Table rules (GFM)
	registry.Register(NewTablePipeStyleRule())   // MD055
	registry.Register(NewTableColumnCountRule()) // MD056
	registry.Register(NewTableBlankLinesRule())  // MD058
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
