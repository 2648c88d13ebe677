// Package facts builds the immutable per-document fact cache: one
// single-pass extraction of every structural fact rules need, plus O(1)
// presence predicates for the skip fast path.
//
// A Cache is built exactly once per (content, flavor) pair and never
// mutated afterwards, so a rule sweep may be fanned out across
// goroutines without locking. Malformed regions degrade to "no
// structural match": this package never returns an error.
package facts

import (
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// ListItemFact describes a list-item marker on one line.
type ListItemFact struct {
	// Ordered is true for numbered items.
	Ordered bool

	// Marker is the bullet character for unordered items ('-', '+', '*')
	// or the delimiter for ordered items ('.' or ')').
	Marker byte

	// Number is the parsed ordinal for ordered items, -1 otherwise.
	Number int

	// MarkerStart is the byte offset of the marker (or first digit).
	MarkerStart int

	// MarkerEnd is the offset just past the marker (past the delimiter
	// for ordered items).
	MarkerEnd int

	// ContentStart is the offset of the first content byte after the
	// spaces following the marker; equals MarkerEnd for empty items.
	ContentStart int

	// Indent is the count of leading whitespace bytes before the marker.
	Indent int
}

// LineFacts is the per-line structural classification.
type LineFacts struct {
	Blank       bool
	FrontMatter bool

	// InCode marks lines inside a code block body (fenced or indented).
	InCode       bool
	FenceOpen    bool
	FenceClose   bool
	IndentedCode bool

	// HeadingLevel is the ATX marker count (1-6); zero when the line is
	// not an ATX heading. Marker runs not followed by a space still
	// classify as headings so spacing rules can see them.
	HeadingLevel     int
	HeadingMarkerEnd int
	HeadingSpaced    bool

	// SetextUnderline is '=' or '-' when the line underlines the
	// previous paragraph line, zero otherwise.
	SetextUnderline byte

	BlockquoteDepth int
	// BlockquoteEnd is the offset just past the last '>' marker.
	BlockquoteEnd int

	ThematicBreak bool
	// HRText is the trimmed thematic-break text, kept for style
	// comparison across breaks.
	HRText string

	List *ListItemFact

	TableRow  bool
	TableSep  bool
	TableCols int

	// Admonition marks MkDocs-style "!!!"/"???" marker lines under
	// flavors that recognize the construct.
	Admonition bool

	// MathFence marks "$$" delimiter lines under flavors recognizing
	// math blocks; InMath marks the enclosed lines.
	MathFence bool
	InMath    bool

	// Indent is the count of leading space/tab bytes.
	Indent int
}

// CodeBlockFact describes one code block.
type CodeBlockFact struct {
	// StartLine and EndLine are 1-based and inclusive of fence lines.
	// For an unterminated fence EndLine is the last document line and
	// Terminated is false.
	StartLine  int
	EndLine    int
	Terminated bool

	Fenced   bool
	Marker   byte
	FenceLen int

	// Info is the trimmed info string of a fenced block; InfoSpan is its
	// byte extent, empty (at the insert point) when no info is present.
	Info     string
	InfoSpan mdtext.Span

	// Admonition marks an indented run that forms the body of an
	// admonition block rather than an indented code block.
	Admonition bool
}

// LinkFact describes one link or image resolved by the tokenizer.
type LinkFact struct {
	Span        mdtext.Span
	TextSpan    mdtext.Span
	Destination string
	Image       bool
	Line        int
}

// EmphasisFact describes one emphasis or strong span.
type EmphasisFact struct {
	Span   mdtext.Span
	Inner  mdtext.Span
	Marker byte
	// Level is the marker count: 1 for emphasis, 2 for strong.
	Level int
	Line  int
}

// RefUse is one reference-style label usage ("[text][label]").
type RefUse struct {
	Label string
	Span  mdtext.Span
	Line  int
}

// TableBlock groups the lines of one pipe table.
type TableBlock struct {
	StartLine int
	SepLine   int
	EndLine   int
	// Cols is the column count of the header row.
	Cols int
}

// Cache is the immutable per-document fact cache.
type Cache struct {
	Doc      *mdtext.Document
	Flavor   flavor.Flavor
	Counters Counters

	// Lines holds per-line facts; index 0 is line 1.
	Lines []LineFacts

	CodeBlocks  []CodeBlockFact
	TableBlocks []TableBlock

	Links     []LinkFact
	Emphasis  []EmphasisFact
	CodeSpans []mdtext.Span
	HTMLSpans []mdtext.Span
	BareURLs  []mdtext.Span
	WikiLinks []mdtext.Span

	// RefDefs maps lowercased reference labels to their defining line.
	RefDefs map[string]int
	RefUses []RefUse

	// FrontMatter is the byte extent of recognized front matter,
	// delimiters included; empty when absent.
	FrontMatter mdtext.Span

	hasIndentedCode bool
	headingLines    []int
	listLines       []int
}

// Build constructs the fact cache for one (content, flavor) pair. The
// token spans come from the tokenizer adapter; the line scanner below is
// the authoritative source for block facts so marker-level defects the
// tokenizer normalizes away (for example "#Heading") remain visible.
func Build(content []byte, tokens []mdtext.Token, fl flavor.Flavor) *Cache {
	c := &Cache{
		Doc:      mdtext.NewDocument(content),
		Flavor:   fl,
		Counters: CountChars(content),
		RefDefs:  make(map[string]int),
	}
	c.Lines = make([]LineFacts, c.Doc.LineCount())

	c.scanLines()
	c.collectTokens(tokens)
	c.scanInline()
	c.groupTables()

	return c
}

// Line returns the facts for a 1-based line number. Out-of-range lines
// return the zero value, keeping callers fail-open.
func (c *Cache) Line(n int) LineFacts {
	if n < 1 || n > len(c.Lines) {
		return LineFacts{}
	}
	return c.Lines[n-1]
}

// LineCount returns the number of lines in the document.
func (c *Cache) LineCount() int {
	return len(c.Lines)
}

// HeadingLevelAt returns the heading level of a 1-based line, covering
// both ATX markers and setext underlines, or 0 for non-heading lines.
func (c *Cache) HeadingLevelAt(n int) int {
	lf := c.Line(n)
	if lf.HeadingLevel > 0 {
		return lf.HeadingLevel
	}
	next := c.Line(n + 1)
	switch next.SetextUnderline {
	case '=':
		return 1
	case '-':
		return 2
	}
	return 0
}

// InCode returns true when the 1-based line is part of a code block,
// fence lines included.
func (c *Cache) InCode(n int) bool {
	lf := c.Line(n)
	return lf.InCode || lf.FenceOpen || lf.FenceClose
}

// HeadingLines returns the 1-based line numbers carrying ATX headings or
// setext underlines, in document order. Do not mutate the returned slice.
func (c *Cache) HeadingLines() []int {
	return c.headingLines
}

// ListLines returns the 1-based line numbers carrying list-item markers.
// Do not mutate the returned slice.
func (c *Cache) ListLines() []int {
	return c.listLines
}

// IsTextLine reports whether the 1-based line is plain paragraph text:
// non-blank and carrying no block-level classification.
func (c *Cache) IsTextLine(n int) bool {
	lf := c.Line(n)
	return !lf.Blank && !lf.FrontMatter && !lf.InCode && !lf.FenceOpen && !lf.FenceClose &&
		lf.HeadingLevel == 0 && lf.SetextUnderline == 0 && lf.List == nil &&
		!lf.ThematicBreak && !lf.TableRow && !lf.Admonition && !lf.MathFence && !lf.InMath
}

// InSpan reports whether offset falls inside any span of the given slice.
func InSpan(spans []mdtext.Span, offset int) bool {
	for _, s := range spans {
		if s.Contains(offset) {
			return true
		}
	}
	return false
}

// Presence predicates. Each is a conservative O(1) check: false
// guarantees the construct is absent; true only means a scan is needed.

// LikelyHasHeadings covers ATX markers and setext underlines.
func (c *Cache) LikelyHasHeadings() bool {
	return c.Counters.Hash > 0 || c.Counters.Hyphen > 0 || c.Counters.Equals > 0
}

// LikelyHasLists covers unordered bullets and ordered markers.
func (c *Cache) LikelyHasLists() bool {
	return c.Counters.Asterisk > 0 || c.Counters.Hyphen > 0 ||
		c.Counters.Plus > 0 || c.Counters.Digit > 0
}

// LikelyHasLinksOrImages covers inline, reference, and autolink forms.
func (c *Cache) LikelyHasLinksOrImages() bool {
	return c.Counters.Bracket > 0 || c.Counters.Bang > 0 || c.Counters.Lt > 0
}

// LikelyHasEmphasis covers '*' and '_' delimiters.
func (c *Cache) LikelyHasEmphasis() bool {
	return c.Counters.Asterisk > 0 || c.Counters.Underscore > 0
}

// LikelyHasBlockquotes covers '>' markers.
func (c *Cache) LikelyHasBlockquotes() bool {
	return c.Counters.Gt > 0
}

// LikelyHasTables covers pipe rows; unrecognized table constructs never
// produce table facts, so the predicate is false under such flavors.
func (c *Cache) LikelyHasTables() bool {
	return c.Counters.Pipe > 0 && c.Flavor.Recognizes(flavor.ConstructTable)
}

// LikelyHasCode covers fences, code spans, hard-tab indents, and
// detected indented blocks.
func (c *Cache) LikelyHasCode() bool {
	return c.Counters.Backtick > 0 || c.Counters.Tilde > 0 ||
		c.Counters.Tab > 0 || c.hasIndentedCode
}

// LikelyHasHTML covers inline tags and HTML blocks.
func (c *Cache) LikelyHasHTML() bool {
	return c.Counters.Lt > 0
}

// LikelyHasBareURLs reports whether the inline scan found scheme-prefixed
// URLs outside link constructs. Unlike the counter predicates this one is
// exact: a bare URL needs none of the counted marker bytes.
func (c *Cache) LikelyHasBareURLs() bool {
	return len(c.BareURLs) > 0
}

// LikelyHasHardTabs covers tab bytes anywhere in the document.
func (c *Cache) LikelyHasHardTabs() bool {
	return c.Counters.Tab > 0
}
