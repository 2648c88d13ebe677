package facts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

func TestScanATXHeadings(t *testing.T) {
	t.Parallel()

	c := build(t, "# Spaced\n#Tight\n####### seven\n", flavor.Default)

	one := c.Line(1)
	assert.Equal(t, 1, one.HeadingLevel)
	assert.True(t, one.HeadingSpaced)

	two := c.Line(2)
	assert.Equal(t, 1, two.HeadingLevel, "missing space still classifies")
	assert.False(t, two.HeadingSpaced)

	assert.Zero(t, c.Line(3).HeadingLevel, "seven markers exceed ATX depth")
}

func TestScanSetextNeedsTextAbove(t *testing.T) {
	t.Parallel()

	c := build(t, "Title\n===\n\n---\n", flavor.Default)

	assert.Equal(t, byte('='), c.Line(2).SetextUnderline)
	assert.False(t, c.Line(2).ThematicBreak)

	four := c.Line(4)
	assert.Zero(t, four.SetextUnderline, "blank line above breaks attachment")
	assert.True(t, four.ThematicBreak)
}

func TestScanFrontMatter(t *testing.T) {
	t.Parallel()

	c := build(t, "---\ntitle: x\n---\n\n# H\n", flavor.Default)

	assert.True(t, c.Line(1).FrontMatter)
	assert.True(t, c.Line(2).FrontMatter)
	assert.True(t, c.Line(3).FrontMatter)
	assert.False(t, c.Line(4).FrontMatter)
	assert.Equal(t, mdtext.NewSpan(0, 17), c.FrontMatter)
	assert.Equal(t, 1, c.Line(5).HeadingLevel)
}

func TestScanFrontMatterUnclosed(t *testing.T) {
	t.Parallel()

	c := build(t, "---\ntitle: x\n", flavor.Default)

	assert.False(t, c.Line(1).FrontMatter)
	assert.True(t, c.FrontMatter.IsEmpty())
	assert.True(t, c.Line(1).ThematicBreak, "an unclosed header is just a break")
}

func TestScanFencedCode(t *testing.T) {
	t.Parallel()

	c := build(t, "```go\nx := 1\n# not a heading\n```\nafter\n", flavor.Default)

	assert.True(t, c.Line(1).FenceOpen)
	assert.True(t, c.Line(2).InCode)
	assert.True(t, c.Line(3).InCode, "fence bodies swallow classification")
	assert.Zero(t, c.Line(3).HeadingLevel)
	assert.True(t, c.Line(4).FenceClose)
	assert.False(t, c.InCode(5))

	require.Len(t, c.CodeBlocks, 1)
	cb := c.CodeBlocks[0]
	assert.Equal(t, 1, cb.StartLine)
	assert.Equal(t, 4, cb.EndLine)
	assert.True(t, cb.Terminated)
	assert.True(t, cb.Fenced)
	assert.Equal(t, byte('`'), cb.Marker)
	assert.Equal(t, 3, cb.FenceLen)
	assert.Equal(t, "go", cb.Info)
	assert.Equal(t, mdtext.NewSpan(3, 5), cb.InfoSpan)
}

func TestScanUnterminatedFence(t *testing.T) {
	t.Parallel()

	c := build(t, "```\ncode\n", flavor.Default)

	require.Len(t, c.CodeBlocks, 1)
	assert.False(t, c.CodeBlocks[0].Terminated)
	assert.Equal(t, 2, c.CodeBlocks[0].EndLine)
	assert.True(t, c.InCode(2))
}

func TestScanFenceCloseNeedsEqualRun(t *testing.T) {
	t.Parallel()

	c := build(t, "````\n```\ncode\n````\n", flavor.Default)

	require.Len(t, c.CodeBlocks, 1)
	assert.True(t, c.Line(2).InCode, "shorter run does not close")
	assert.True(t, c.Line(4).FenceClose)
	assert.True(t, c.CodeBlocks[0].Terminated)
}

func TestScanIndentedCode(t *testing.T) {
	t.Parallel()

	c := build(t, "para\n\n    code\n    more\n\ntext\n", flavor.Default)

	assert.True(t, c.Line(3).IndentedCode)
	assert.True(t, c.Line(4).IndentedCode)
	assert.False(t, c.Line(6).InCode)

	require.Len(t, c.CodeBlocks, 1)
	cb := c.CodeBlocks[0]
	assert.Equal(t, 3, cb.StartLine)
	assert.Equal(t, 4, cb.EndLine)
	assert.False(t, cb.Fenced)
	assert.True(t, cb.Terminated)
}

func TestScanIndentedCodeNotAfterParagraph(t *testing.T) {
	t.Parallel()

	c := build(t, "para\n    lazy continuation\n", flavor.Default)

	assert.False(t, c.Line(2).IndentedCode)
}

func TestScanIndentedListContinuationIsNotCode(t *testing.T) {
	t.Parallel()

	c := build(t, "- item\n\n    continuation\n", flavor.Default)

	assert.False(t, c.Line(3).IndentedCode)
	assert.Empty(t, c.CodeBlocks)
}

func TestScanBlockquotes(t *testing.T) {
	t.Parallel()

	c := build(t, "> one\n>> two\n> > spaced\n>\n", flavor.Default)

	one := c.Line(1)
	assert.Equal(t, 1, one.BlockquoteDepth)
	assert.Equal(t, 1, one.BlockquoteEnd)

	assert.Equal(t, 2, c.Line(2).BlockquoteDepth)
	assert.Equal(t, 2, c.Line(3).BlockquoteDepth)

	four := c.Line(4)
	assert.Equal(t, 1, four.BlockquoteDepth)
	assert.True(t, c.IsTextLine(1))
}

func TestScanQuotedHeading(t *testing.T) {
	t.Parallel()

	c := build(t, "> # Quoted\n", flavor.Default)

	lf := c.Line(1)
	assert.Equal(t, 1, lf.BlockquoteDepth)
	assert.Equal(t, 1, lf.HeadingLevel)
}

func TestScanListItems(t *testing.T) {
	t.Parallel()

	c := build(t, "- a\n1. b\n10) c\n+ d\n* e\n-nospace\n", flavor.Default)

	require.NotNil(t, c.Line(1).List)
	dash := c.Line(1).List
	assert.False(t, dash.Ordered)
	assert.Equal(t, byte('-'), dash.Marker)
	assert.Equal(t, -1, dash.Number)
	assert.Equal(t, 0, dash.MarkerStart)
	assert.Equal(t, 1, dash.MarkerEnd)
	assert.Equal(t, 2, dash.ContentStart)

	require.NotNil(t, c.Line(2).List)
	ordered := c.Line(2).List
	assert.True(t, ordered.Ordered)
	assert.Equal(t, byte('.'), ordered.Marker)
	assert.Equal(t, 1, ordered.Number)

	require.NotNil(t, c.Line(3).List)
	paren := c.Line(3).List
	assert.Equal(t, byte(')'), paren.Marker)
	assert.Equal(t, 10, paren.Number)

	require.NotNil(t, c.Line(4).List)
	require.NotNil(t, c.Line(5).List)
	assert.Nil(t, c.Line(6).List, "marker needs a following space")

	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.ListLines())
}

func TestScanThematicBreaks(t *testing.T) {
	t.Parallel()

	c := build(t, "text\n\n***\n\n* * *\n\n___\n", flavor.Default)

	assert.True(t, c.Line(3).ThematicBreak)
	assert.Equal(t, "***", c.Line(3).HRText)
	assert.True(t, c.Line(5).ThematicBreak, "spaced markers still break")
	assert.Equal(t, "* * *", c.Line(5).HRText)
	assert.True(t, c.Line(7).ThematicBreak)
}

func TestScanMathBlocks(t *testing.T) {
	t.Parallel()

	content := "$$\nx^2 + y\n$$\n"

	quarto := build(t, content, flavor.Quarto)
	assert.True(t, quarto.Line(1).MathFence)
	assert.True(t, quarto.Line(2).InMath)
	assert.True(t, quarto.Line(3).MathFence)

	gfm := build(t, content, flavor.GFM)
	assert.False(t, gfm.Line(1).MathFence, "math needs flavor recognition")
	assert.False(t, gfm.Line(2).InMath)
}

func TestScanAdmonitions(t *testing.T) {
	t.Parallel()

	content := "!!! note\n\n    body text\n"

	mkdocs := build(t, content, flavor.MkDocs)
	assert.True(t, mkdocs.Line(1).Admonition)
	require.Len(t, mkdocs.CodeBlocks, 1)
	assert.True(t, mkdocs.CodeBlocks[0].Admonition, "indented body belongs to the marker")

	gfm := build(t, content, flavor.GFM)
	assert.False(t, gfm.Line(1).Admonition)
	if len(gfm.CodeBlocks) == 1 {
		assert.False(t, gfm.CodeBlocks[0].Admonition)
	}
}

func TestScanTableRows(t *testing.T) {
	t.Parallel()

	c := build(t, "| a | b |\n| --- | :-: |\n| 1 | 2 |\n", flavor.GFM)

	header := c.Line(1)
	assert.True(t, header.TableRow)
	assert.False(t, header.TableSep)
	assert.Equal(t, 2, header.TableCols)

	sep := c.Line(2)
	assert.True(t, sep.TableSep)
	assert.Equal(t, 2, sep.TableCols)

	assert.True(t, c.Line(3).TableRow)
}

func TestScanTableRowsIgnoredWithoutFlavor(t *testing.T) {
	t.Parallel()

	c := build(t, "| a | b |\n| --- | --- |\n", flavor.Default)

	assert.False(t, c.Line(1).TableRow)
	assert.Empty(t, c.TableBlocks)
}
