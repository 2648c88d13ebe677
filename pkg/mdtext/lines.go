package mdtext

import "sort"

// LineInfo records the byte extent of one line.
type LineInfo struct {
	// Start is the offset of the first byte of the line.
	Start int

	// TextEnd is the offset where the line's text ends, before any line
	// terminator (\n or \r\n).
	TextEnd int

	// End is the offset one past the line terminator; the next line
	// starts here.
	End int
}

// Document pairs raw content with its line index. A Document is immutable
// after construction; every derived structure may hold a reference to it.
type Document struct {
	Content []byte
	Lines   []LineInfo
}

// NewDocument builds the line index for content. Both LF and CRLF line
// endings are handled.
func NewDocument(content []byte) *Document {
	return &Document{
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from raw content.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, ch := range content {
		if ch == '\n' {
			textEnd := idx
			if idx > 0 && content[idx-1] == '\r' {
				textEnd = idx - 1
			}
			lines = append(lines, LineInfo{
				Start:   lineStart,
				TextEnd: textEnd,
				End:     idx + 1,
			})
			lineStart = idx + 1
		}
	}

	// Final line without a trailing newline.
	if lineStart < len(content) {
		lines = append(lines, LineInfo{
			Start:   lineStart,
			TextEnd: len(content),
			End:     len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineText returns the text of the 1-based line, excluding the terminator.
// Returns nil for out-of-range line numbers.
func (d *Document) LineText(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}
	li := d.Lines[line-1]
	return d.Content[li.Start:li.TextEnd]
}

// LineSpan returns the span of the 1-based line including its terminator.
func (d *Document) LineSpan(line int) Span {
	if line < 1 || line > len(d.Lines) {
		return Span{}
	}
	li := d.Lines[line-1]
	return Span{Start: li.Start, End: li.End}
}

// IsBlank returns true if the 1-based line contains only spaces and tabs.
func (d *Document) IsBlank(line int) bool {
	for _, ch := range d.LineText(line) {
		if ch != ' ' && ch != '\t' {
			return false
		}
	}
	return true
}

// PositionAt converts a byte offset to a 1-based line/column position.
// Column counts bytes. Offsets at or past the end of content map to the
// end of the last line; negative offsets yield the zero Position.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 || len(d.Lines) == 0 {
		return Position{}
	}

	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return Position{Line: len(d.Lines), Column: len(d.Content) - last.Start + 1}
	}

	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].End > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}

	return Position{Line: idx + 1, Column: offset - d.Lines[idx].Start + 1}
}

// Offset converts a 1-based line/column pair to a byte offset.
// Returns false when the pair is out of range.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.Lines) || col < 1 {
		return 0, false
	}
	li := d.Lines[line-1]
	offset := li.Start + col - 1
	if offset > li.End {
		return 0, false
	}
	return offset, true
}
