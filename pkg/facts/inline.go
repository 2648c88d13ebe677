package facts

import (
	"strings"

	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// collectTokens folds the tokenizer adapter's inline spans into the
// cache. Spans inside front matter are dropped; a token the adapter
// could not place precisely never arrives here at all, so everything
// kept is usable as-is.
func (c *Cache) collectTokens(tokens []mdtext.Token) {
	for _, t := range tokens {
		if t.Span.End > len(c.Doc.Content) || t.Span.Start < 0 || t.Span.IsEmpty() {
			continue
		}
		if !c.FrontMatter.IsEmpty() && t.Span.Start < c.FrontMatter.End {
			continue
		}
		line := c.Doc.PositionAt(t.Span.Start).Line

		switch t.Kind {
		case mdtext.TokenLink, mdtext.TokenImage:
			c.Links = append(c.Links, LinkFact{
				Span:        t.Span,
				TextSpan:    t.Inner,
				Destination: t.Info,
				Image:       t.Kind == mdtext.TokenImage,
				Line:        line,
			})
		case mdtext.TokenEmphasis, mdtext.TokenStrong:
			c.Emphasis = append(c.Emphasis, EmphasisFact{
				Span:   t.Span,
				Inner:  t.Inner,
				Marker: c.Doc.Content[t.Span.Start],
				Level:  t.Level,
				Line:   line,
			})
		case mdtext.TokenCodeSpan:
			c.CodeSpans = append(c.CodeSpans, t.Span)
		case mdtext.TokenHTMLInline, mdtext.TokenHTMLBlock:
			c.HTMLSpans = append(c.HTMLSpans, t.Span)
		}
	}
}

// scanInline extracts the inline facts the tokenizer does not carry:
// reference definitions and usages, wiki links, and bare URLs.
func (c *Cache) scanInline() {
	wikiOK := c.Flavor.Recognizes(flavor.ConstructWikiLink)

	for ln := 1; ln <= c.LineCount(); ln++ {
		lf := c.Line(ln)
		if lf.Blank || lf.FrontMatter || c.InCode(ln) || lf.InMath || lf.MathFence {
			continue
		}
		text := string(c.Doc.LineText(ln))
		base := c.Doc.Lines[ln-1].Start

		c.scanRefDef(text, ln)
		if wikiOK {
			c.scanWikiLinks(text, base)
		}
		c.scanRefUses(text, base, ln)
		c.scanBareURLs(text, base)
	}
}

// scanRefDef recognizes "[label]: destination" definition lines.
func (c *Cache) scanRefDef(text string, ln int) {
	trimmed := strings.TrimLeft(text, " ")
	if len(text)-len(trimmed) > 3 || !strings.HasPrefix(trimmed, "[") {
		return
	}
	closeIdx := strings.Index(trimmed, "]:")
	if closeIdx <= 1 {
		return
	}
	label := strings.ToLower(strings.TrimSpace(trimmed[1:closeIdx]))
	if label == "" {
		return
	}
	if _, exists := c.RefDefs[label]; !exists {
		c.RefDefs[label] = ln
	}
}

// scanWikiLinks records [[target]] spans so reference scanning can skip
// them under flavors that recognize the construct.
func (c *Cache) scanWikiLinks(text string, base int) {
	for i := 0; i+1 < len(text); i++ {
		if text[i] != '[' || text[i+1] != '[' {
			continue
		}
		end := strings.Index(text[i+2:], "]]")
		if end < 0 {
			return
		}
		c.WikiLinks = append(c.WikiLinks, mdtext.NewSpan(base+i, base+i+2+end+2))
		i += 2 + end + 1
	}
}

// scanRefUses recognizes "[text][label]" and "[label][]" usages.
func (c *Cache) scanRefUses(text string, base int, ln int) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' || (i > 0 && text[i-1] == '\\') {
			continue
		}
		if InSpan(c.WikiLinks, base+i) || InSpan(c.CodeSpans, base+i) {
			continue
		}
		firstClose := strings.IndexByte(text[i+1:], ']')
		if firstClose < 0 {
			return
		}
		firstEnd := i + 1 + firstClose
		if firstEnd+1 >= len(text) || text[firstEnd+1] != '[' {
			continue
		}
		secondClose := strings.IndexByte(text[firstEnd+2:], ']')
		if secondClose < 0 {
			return
		}
		secondEnd := firstEnd + 2 + secondClose

		label := strings.TrimSpace(text[firstEnd+2 : secondEnd])
		if label == "" {
			// Collapsed form: the text doubles as the label.
			label = strings.TrimSpace(text[i+1 : firstEnd])
		}
		if label == "" {
			continue
		}
		c.RefUses = append(c.RefUses, RefUse{
			Label: strings.ToLower(label),
			Span:  mdtext.NewSpan(base+i, base+secondEnd+1),
			Line:  ln,
		})
		i = secondEnd
	}
}

// scanBareURLs records http(s) URLs that appear outside code spans,
// links, autolink angle brackets, and destination parentheses.
func (c *Cache) scanBareURLs(text string, base int) {
	for _, scheme := range []string{"http://", "https://"} {
		from := 0
		for {
			rel := strings.Index(text[from:], scheme)
			if rel < 0 {
				break
			}
			start := from + rel
			from = start + len(scheme)

			if start > 0 {
				switch text[start-1] {
				case '<', '(', '"', '\'', '[', ']', '=':
					continue
				}
			}
			abs := base + start
			if InSpan(c.CodeSpans, abs) || c.insideLink(abs) || InSpan(c.WikiLinks, abs) {
				continue
			}

			end := start
			for end < len(text) && !isURLStop(text[end]) {
				end++
			}
			// Trailing punctuation is prose, not URL.
			for end > start && strings.ContainsRune(".,;:!?", rune(text[end-1])) {
				end--
			}
			if end-start <= len(scheme) {
				continue
			}
			c.BareURLs = append(c.BareURLs, mdtext.NewSpan(abs, base+end))
		}
	}
}

func (c *Cache) insideLink(offset int) bool {
	for _, l := range c.Links {
		if l.Span.Contains(offset) {
			return true
		}
	}
	return false
}

func isURLStop(ch byte) bool {
	switch ch {
	case ' ', '\t', '<', '>', ')', ']', '"', '\'', '`':
		return true
	default:
		return false
	}
}
