// Package fix merges independently proposed byte-range edits into one
// conflict-free document mutation. Edits reference spans in the content
// version that produced them; the merge commits a non-overlapping subset
// and defers the rest, and application is a single linear rewrite so no
// offset is ever invalidated between edits.
package fix

import "github.com/yaklabco/mdfix/pkg/mdtext"

// Edit replaces the bytes of Span with NewText. An empty NewText deletes
// the span; an empty span inserts at Span.Start.
type Edit struct {
	// Span is the half-open byte range to replace, valid in the content
	// version the edit was produced against.
	Span mdtext.Span

	// NewText is the replacement text.
	NewText string
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) Edit {
	return Edit{Span: mdtext.NewSpan(start, end), NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit {
	return Replace(offset, offset, text)
}

// Delete returns an edit deleting [start, end).
func Delete(start, end int) Edit {
	return Replace(start, end, "")
}
