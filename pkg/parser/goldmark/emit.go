package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// emitter walks a goldmark AST and collects token spans. Every emission
// path verifies the marker bytes it claims against the source; spans
// that cannot be verified are dropped.
type emitter struct {
	content []byte
	tokens  []mdtext.Token
}

func (e *emitter) walk(doc ast.Node) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			e.visit(n)
		}
		return ast.WalkContinue, nil
	})
}

func (e *emitter) visit(n ast.Node) {
	switch v := n.(type) {
	case *ast.Heading:
		e.emitHeading(v)
	case *ast.Paragraph:
		e.emitBlock(v, mdtext.TokenParagraph)
	case *ast.FencedCodeBlock:
		e.emitFenced(v)
	case *ast.CodeBlock:
		e.emitBlock(v, mdtext.TokenIndentedCode)
	case *ast.ListItem:
		e.emitListItem(v)
	case *ast.Blockquote:
		e.emitExtent(v, mdtext.TokenBlockquote)
	case *ast.HTMLBlock:
		e.emitHTMLBlock(v)
	case *ast.Emphasis:
		e.emitEmphasis(v)
	case *ast.CodeSpan:
		e.emitCodeSpan(v)
	case *ast.Link:
		e.emitLink(v, v.Destination, false)
	case *ast.Image:
		e.emitLink(v, v.Destination, true)
	case *ast.RawHTML:
		e.emitRawHTML(v)
	}
}

func (e *emitter) add(t mdtext.Token) {
	if t.Span.Start < 0 || t.Span.End > len(e.content) || t.Span.Start >= t.Span.End {
		return
	}
	e.tokens = append(e.tokens, t)
}

// emitHeading covers ATX and setext headings. The span is widened to the
// start of the first line so the marker is inside it.
func (e *emitter) emitHeading(h *ast.Heading) {
	start, end, ok := blockLines(h)
	if !ok {
		return
	}
	e.add(mdtext.Token{
		Kind:  mdtext.TokenHeading,
		Span:  mdtext.NewSpan(lineStartBefore(e.content, start), end),
		Level: h.Level,
	})
}

func (e *emitter) emitBlock(n ast.Node, kind mdtext.TokenKind) {
	start, end, ok := blockLines(n)
	if !ok {
		return
	}
	e.add(mdtext.Token{Kind: kind, Span: mdtext.NewSpan(start, end)})
}

// emitFenced records the content extent of a fenced block. The fence
// lines themselves are tracked by the line scanner, so the token only
// needs to carry the info string.
func (e *emitter) emitFenced(cb *ast.FencedCodeBlock) {
	start, end, ok := blockLines(cb)
	if !ok {
		return
	}
	var info string
	if cb.Info != nil {
		info = strings.TrimSpace(string(cb.Info.Segment.Value(e.content)))
	}
	e.add(mdtext.Token{
		Kind: mdtext.TokenCodeBlock,
		Span: mdtext.NewSpan(start, end),
		Info: info,
	})
}

func (e *emitter) emitListItem(li *ast.ListItem) {
	start, end, ok := linesExtent(li)
	if !ok {
		return
	}
	tok := mdtext.Token{
		Kind: mdtext.TokenListItem,
		Span: mdtext.NewSpan(lineStartBefore(e.content, start), end),
	}
	if list, isList := li.Parent().(*ast.List); isList {
		tok.Ordered = list.IsOrdered()
		tok.Info = string(list.Marker)
	}
	e.add(tok)
}

// emitExtent emits the recursive line extent of a container block,
// widened to the start of its first line so prefix markers are covered.
func (e *emitter) emitExtent(n ast.Node, kind mdtext.TokenKind) {
	start, end, ok := linesExtent(n)
	if !ok {
		return
	}
	e.add(mdtext.Token{Kind: kind, Span: mdtext.NewSpan(lineStartBefore(e.content, start), end)})
}

func (e *emitter) emitHTMLBlock(hb *ast.HTMLBlock) {
	start, end, ok := blockLines(hb)
	if !ok {
		return
	}
	if hb.HasClosure() && hb.ClosureLine.Stop > end {
		end = hb.ClosureLine.Stop
	}
	e.add(mdtext.Token{Kind: mdtext.TokenHTMLBlock, Span: mdtext.NewSpan(start, end)})
}

// emitEmphasis widens the inner text extent by the marker run on each
// side, verifying the marker bytes are really there.
func (e *emitter) emitEmphasis(em *ast.Emphasis) {
	inner, ok := textExtent(em, e.content)
	if !ok {
		return
	}
	start, end := inner.Start, inner.End
	for i := 0; i < em.Level; i++ {
		if start == 0 || !isEmphasisMarker(e.content[start-1]) {
			return
		}
		start--
		if end >= len(e.content) || e.content[end] != e.content[start] {
			return
		}
		end++
	}
	kind := mdtext.TokenEmphasis
	if em.Level >= 2 {
		kind = mdtext.TokenStrong
	}
	e.add(mdtext.Token{
		Kind:  kind,
		Span:  mdtext.NewSpan(start, end),
		Inner: inner,
		Level: em.Level,
	})
}

func (e *emitter) emitCodeSpan(cs *ast.CodeSpan) {
	inner, ok := textExtent(cs, e.content)
	if !ok {
		return
	}
	start := inner.Start
	for start > 0 && e.content[start-1] == '`' {
		start--
	}
	end := inner.End
	for end < len(e.content) && e.content[end] == '`' {
		end++
	}
	if start == inner.Start || end == inner.End {
		return
	}
	e.add(mdtext.Token{
		Kind:  mdtext.TokenCodeSpan,
		Span:  mdtext.NewSpan(start, end),
		Inner: inner,
	})
}

// emitLink places the full [text](dest) or [text][label] extent by
// scanning outward from the link text. Reference definitions and
// shortcut references that cannot be verified are dropped.
func (e *emitter) emitLink(n ast.Node, dest []byte, image bool) {
	inner, ok := textExtent(n, e.content)
	if !ok {
		return
	}
	start := inner.Start - 1
	if start < 0 || e.content[start] != '[' {
		return
	}
	if image {
		start--
		if start < 0 || e.content[start] != '!' {
			return
		}
	}
	end, ok := scanLinkTail(e.content, inner.End)
	if !ok {
		return
	}
	kind := mdtext.TokenLink
	if image {
		kind = mdtext.TokenImage
	}
	e.add(mdtext.Token{
		Kind:  kind,
		Span:  mdtext.NewSpan(start, end),
		Inner: inner,
		Info:  string(dest),
	})
}

func (e *emitter) emitRawHTML(rh *ast.RawHTML) {
	start, end := -1, -1
	for i := 0; i < rh.Segments.Len(); i++ {
		seg := rh.Segments.At(i)
		if start == -1 || seg.Start < start {
			start = seg.Start
		}
		if seg.Stop > end {
			end = seg.Stop
		}
	}
	if start == -1 {
		return
	}
	e.add(mdtext.Token{Kind: mdtext.TokenHTMLInline, Span: mdtext.NewSpan(start, end)})
}

// scanLinkTail consumes "](...)" or "][label]" starting at the byte
// after the link text.
func scanLinkTail(content []byte, from int) (int, bool) {
	i := from
	if i >= len(content) || content[i] != ']' {
		return 0, false
	}
	i++
	if i >= len(content) {
		return 0, false
	}
	switch content[i] {
	case '(':
		depth := 1
		for j := i + 1; j < len(content); j++ {
			switch content[j] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return j + 1, true
				}
			case '\n':
				// Destinations with hard breaks are rare enough to drop.
				return 0, false
			}
		}
	case '[':
		for j := i + 1; j < len(content); j++ {
			switch content[j] {
			case ']':
				return j + 1, true
			case '\n':
				return 0, false
			}
		}
	}
	return 0, false
}

// blockLines returns the raw first/last segment bounds of a block node.
func blockLines(n ast.Node) (int, int, bool) {
	if n.Type() != ast.TypeBlock {
		return 0, 0, false
	}
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, 0, false
	}
	return lines.At(0).Start, lines.At(lines.Len() - 1).Stop, true
}

// linesExtent folds blockLines over a container's whole subtree, for
// nodes like list items and blockquotes whose own Lines are empty.
func linesExtent(n ast.Node) (int, int, bool) {
	start, end := -1, -1
	if s, e, ok := blockLines(n); ok {
		start, end = s, e
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		s, e, ok := linesExtent(child)
		if !ok {
			continue
		}
		if start == -1 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}
	if start == -1 {
		return 0, 0, false
	}
	return start, end, true
}

// textExtent returns the byte extent of every text segment below an
// inline node.
func textExtent(n ast.Node, content []byte) (mdtext.Span, bool) {
	start, end := -1, -1
	var grow func(s, e int)
	grow = func(s, e int) {
		if start == -1 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}
	var walk func(node ast.Node)
	walk = func(node ast.Node) {
		switch v := node.(type) {
		case *ast.Text:
			grow(v.Segment.Start, v.Segment.Stop)
		case *ast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
				grow(seg.Start, seg.Stop)
			}
		}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(n)
	if start == -1 || end > len(content) {
		return mdtext.Span{}, false
	}
	return mdtext.NewSpan(start, end), true
}

func lineStartBefore(content []byte, off int) int {
	for off > 0 && content[off-1] != '\n' {
		off--
	}
	return off
}

func isEmphasisMarker(b byte) bool {
	return b == '*' || b == '_'
}
