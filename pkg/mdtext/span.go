// Package mdtext provides the raw-text data model shared by the tokenizer
// adapter, the fact cache, and the fix engine: byte spans, line metadata,
// and classified token spans.
package mdtext

// Span is a half-open byte range [Start, End) into document content.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// NewSpan returns the span [start, end).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps returns true if the two spans share at least one byte.
// Empty spans never overlap anything.
func (s Span) Overlaps(o Span) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return false
	}
	return s.Start < o.End && o.Start < s.End
}

// Text returns the bytes the span covers, or nil when the span is out of
// bounds for the given content.
func (s Span) Text(content []byte) []byte {
	if s.Start < 0 || s.End > len(content) || s.Start > s.End {
		return nil
	}
	return content[s.Start:s.End]
}

// Position is a 1-based line/column pair for display.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if the position has positive line and column.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}
