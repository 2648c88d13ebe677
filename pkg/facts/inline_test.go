package facts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

func TestScanRefDefs(t *testing.T) {
	t.Parallel()

	c := build(t, "[label]: https://example.com\n[MiXeD]: /path\n[label]: /dup\n", flavor.Default)

	assert.Equal(t, 1, c.RefDefs["label"], "first definition wins")
	assert.Equal(t, 2, c.RefDefs["mixed"], "labels fold case")
	assert.Len(t, c.RefDefs, 2)
}

func TestScanRefUses(t *testing.T) {
	t.Parallel()

	c := build(t, "see [text][label] and [collapsed][]\n", flavor.Default)

	require.Len(t, c.RefUses, 2)
	assert.Equal(t, "label", c.RefUses[0].Label)
	assert.Equal(t, 1, c.RefUses[0].Line)
	assert.Equal(t, "collapsed", c.RefUses[1].Label, "collapsed form reuses the text")
}

func TestScanRefUsesIgnoresInlineLinks(t *testing.T) {
	t.Parallel()

	c := build(t, "an [inline](https://example.com) link\n", flavor.Default)

	assert.Empty(t, c.RefUses)
}

func TestScanRefUsesSkipsCodeSpans(t *testing.T) {
	t.Parallel()

	content := "see `[a][b]` end\n"
	tokens := []mdtext.Token{
		{Kind: mdtext.TokenCodeSpan, Span: mdtext.NewSpan(4, 12)},
	}

	c := facts.Build([]byte(content), tokens, flavor.Get(flavor.Default))

	assert.Empty(t, c.RefUses)
}

func TestScanWikiLinks(t *testing.T) {
	t.Parallel()

	content := "see [[note one]] and [[two]]\n"

	obsidian := build(t, content, flavor.Obsidian)
	require.Len(t, obsidian.WikiLinks, 2)
	assert.Equal(t, mdtext.NewSpan(4, 16), obsidian.WikiLinks[0])
	assert.Equal(t, mdtext.NewSpan(21, 28), obsidian.WikiLinks[1])
	assert.Empty(t, obsidian.RefUses, "wiki spans are not reference uses")

	plain := build(t, content, flavor.Default)
	assert.Empty(t, plain.WikiLinks)
}

func TestScanWikiLinkAliasFormUnderDefault(t *testing.T) {
	t.Parallel()

	// Without wiki-link recognition the alias form parses as a
	// reference-style usage. Under Obsidian the whole span is a wiki
	// link and no usage is recorded.
	content := "see [[page][alias]] here\n"

	plain := build(t, content, flavor.Default)
	require.Len(t, plain.RefUses, 1)
	assert.Equal(t, "alias", plain.RefUses[0].Label)

	obsidian := build(t, content, flavor.Obsidian)
	assert.Empty(t, obsidian.RefUses)
}

func TestScanBareURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []mdtext.Span
	}{
		{
			name:  "plain url",
			input: "visit https://example.com today\n",
			want:  []mdtext.Span{mdtext.NewSpan(6, 25)},
		},
		{
			name:  "trailing punctuation stays prose",
			input: "go to https://e.co/x.\n",
			want:  []mdtext.Span{mdtext.NewSpan(6, 20)},
		},
		{
			name:  "autolink is excluded",
			input: "see <https://example.com>\n",
			want:  nil,
		},
		{
			name:  "link destination is excluded",
			input: "[x](https://example.com)\n",
			want:  nil,
		},
		{
			name:  "http scheme",
			input: "http://example.com\n",
			want:  []mdtext.Span{mdtext.NewSpan(0, 18)},
		},
		{
			name:  "bare scheme alone is not a url",
			input: "the https:// prefix\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := build(t, tt.input, flavor.Default)
			assert.Equal(t, tt.want, c.BareURLs)
		})
	}
}

func TestScanBareURLsSkipsCode(t *testing.T) {
	t.Parallel()

	c := build(t, "```\nhttps://example.com\n```\n", flavor.Default)

	assert.Empty(t, c.BareURLs)
}

func TestGroupTables(t *testing.T) {
	t.Parallel()

	c := build(t, "| a | b |\n| --- | --- |\n| 1 | 2 |\n| 3 | 4 |\n\ntext\n", flavor.GFM)

	require.Len(t, c.TableBlocks, 1)
	tb := c.TableBlocks[0]
	assert.Equal(t, 1, tb.StartLine)
	assert.Equal(t, 2, tb.SepLine)
	assert.Equal(t, 4, tb.EndLine)
	assert.Equal(t, 2, tb.Cols)
}

func TestGroupTablesEdgeless(t *testing.T) {
	t.Parallel()

	c := build(t, "a | b\n--- | ---\nx | y\n", flavor.GFM)

	require.Len(t, c.TableBlocks, 1)
	assert.Equal(t, 2, c.TableBlocks[0].Cols)
	assert.Equal(t, 3, c.TableBlocks[0].EndLine)
}

func TestGroupTablesNeedsSeparator(t *testing.T) {
	t.Parallel()

	c := build(t, "| a | b |\nplain text\n", flavor.GFM)

	assert.Empty(t, c.TableBlocks)
}

func TestGroupTablesMultiple(t *testing.T) {
	t.Parallel()

	c := build(t, "| a |\n| - |\n| 1 |\n\n| b | c |\n| - | - |\n", flavor.GFM)

	require.Len(t, c.TableBlocks, 2)
	assert.Equal(t, 1, c.TableBlocks[0].Cols)
	assert.Equal(t, 3, c.TableBlocks[0].EndLine)
	assert.Equal(t, 2, c.TableBlocks[1].Cols)
	assert.Equal(t, 5, c.TableBlocks[1].StartLine)
}
