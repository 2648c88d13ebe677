package fix

import "bytes"

// Apply rewrites content with a sorted, non-overlapping edit slice, as
// produced by Merge. The rewrite is a single linear copy: because every
// span references pre-edit offsets and no two spans overlap, no offset
// adjustment is needed and the result is independent of any notion of
// application order.
func Apply(content []byte, edits []Edit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - e.Span.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Span.Start])
		out.WriteString(e.NewText)
		cursor = e.Span.End
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// ApplySingle applies one edit on its own, validating the span against
// the current content bounds first. This is the path for interactive use
// outside the full sweep, where a stale span must be rejected rather
// than silently splice the wrong bytes.
func ApplySingle(content []byte, e Edit) ([]byte, error) {
	if err := Validate([]Edit{e}, len(content)); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(content)+len(e.NewText)-e.Span.Len())
	out = append(out, content[:e.Span.Start]...)
	out = append(out, e.NewText...)
	out = append(out, content[e.Span.End:]...)
	return out, nil
}
