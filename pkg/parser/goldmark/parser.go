// Package goldmark adapts the goldmark parser into the token stream the
// fact cache consumes. The adapter is deliberately lossy: it emits spans
// only for constructs it can place exactly in the source bytes and omits
// everything else, so a parse quirk degrades to missing tokens rather
// than wrong ones.
package goldmark

import (
	"context"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// Parser tokenizes Markdown content with a goldmark instance configured
// for one flavor. A Parser is safe for concurrent use.
type Parser struct {
	flavor flavor.Flavor
	md     goldmark.Markdown
}

// New creates a parser whose goldmark extensions mirror the constructs
// the flavor recognizes.
func New(fl flavor.Flavor) *Parser {
	return &Parser{
		flavor: fl,
		md:     newGoldmarkInstance(fl),
	}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() flavor.Flavor {
	return p.flavor
}

// Tokenize parses content and returns the spans the adapter could place.
// The result is sorted by start offset, outermost span first on ties.
func (p *Parser) Tokenize(ctx context.Context, content []byte) ([]mdtext.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tokenize cancelled: %w", err)
	}

	reader := text.NewReader(content)
	doc := p.md.Parser().Parse(reader)

	e := &emitter{content: content}
	e.walk(doc)

	sort.SliceStable(e.tokens, func(i, j int) bool {
		a, b := e.tokens[i].Span, e.tokens[j].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End > b.End
	})
	return e.tokens, nil
}

// newGoldmarkInstance builds a goldmark.Markdown whose extension set is
// derived from the flavor's recognizer table.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(fl flavor.Flavor) goldmark.Markdown {
	var exts []goldmark.Extender
	if fl.Recognizes(flavor.ConstructTable) {
		exts = append(exts, extension.Table)
	}
	if fl.Recognizes(flavor.ConstructStrikethrough) {
		exts = append(exts, extension.Strikethrough)
	}
	if fl.Recognizes(flavor.ConstructTaskList) {
		exts = append(exts, extension.TaskList)
	}
	if fl.Recognizes(flavor.ConstructAutolink) {
		exts = append(exts, extension.Linkify)
	}
	if len(exts) == 0 {
		return goldmark.New()
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}
