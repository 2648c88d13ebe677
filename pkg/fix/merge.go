package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose span is outside content bounds.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d): %s", e.Edit.Span.Start, e.Edit.Span.End, e.Message)
}

// Validate checks that every edit's span fits within contentLen.
// Returns the first invalid edit found, or nil.
func Validate(edits []Edit, contentLen int) error {
	for _, e := range edits {
		switch {
		case e.Span.Start < 0:
			return &ValidationError{Edit: e, Message: "start offset is negative"}
		case e.Span.End < e.Span.Start:
			return &ValidationError{Edit: e, Message: "end offset is before start offset"}
		case e.Span.End > contentLen:
			return &ValidationError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.Span.End, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by span start ascending, ties broken by span end
// descending: a wider edit at the same start subsumes a narrower one and
// must be considered first. The sort is stable, so edits with identical
// spans keep their collection order and the earliest-collected one wins
// the subsequent overlap walk.
func Sort(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start < edits[j].Span.Start
		}
		return edits[i].Span.End > edits[j].Span.End
	})
}

// Merge sorts the edits and greedily commits every edit whose span does
// not overlap the most recently committed one. Overlapping edits are
// deferred, not applied; the caller re-surfaces them as unresolved
// violations. The input slice is not modified.
//
// Two committed spans never intersect: that is the invariant the single
// linear rewrite in Apply depends on. Insertions at the end offset of a
// committed replacement are allowed, since half-open spans make them
// disjoint.
func Merge(edits []Edit) (committed, deferred []Edit) {
	if len(edits) == 0 {
		return nil, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	Sort(sorted)

	committed = make([]Edit, 0, len(sorted))
	committed = append(committed, sorted[0])
	lastEnd := sorted[0].Span.End
	lastStart := sorted[0].Span.Start

	for _, e := range sorted[1:] {
		// An empty span at lastEnd is disjoint; an identical empty span
		// at the same point as a previous empty insertion conflicts.
		overlaps := e.Span.Start < lastEnd ||
			(e.Span.Start == lastStart && e.Span.IsEmpty() && lastStart == lastEnd)
		if overlaps {
			deferred = append(deferred, e)
			continue
		}
		committed = append(committed, e)
		lastStart = e.Span.Start
		lastEnd = e.Span.End
	}

	return committed, deferred
}
