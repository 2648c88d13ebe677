package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/pkg/flavor"
)

func TestReversedLinkRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "proper link untouched",
			input:     "Visit [Google](https://google.com) now\n",
			wantCount: 0,
			wantFix:   "Visit [Google](https://google.com) now\n",
		},
		{
			name:      "reversed link rewritten",
			input:     "Visit (Google)[https://google.com] now\n",
			wantCount: 1,
			wantFix:   "Visit [Google](https://google.com) now\n",
		},
		{
			name:      "two reversed links on one line",
			input:     "(a)[u1] and (b)[u2]\n",
			wantCount: 2,
			wantFix:   "[a](u1) and [b](u2)\n",
		},
		{
			name:      "nested brackets rejected",
			input:     "call f(a[0])[x] here\n",
			wantCount: 0,
			wantFix:   "call f(a[0])[x] here\n",
		},
		{
			name:      "code span ignored",
			input:     "use `(x)[y]` here\n",
			wantCount: 0,
			wantFix:   "use `(x)[y]` here\n",
		},
		{
			name:      "code fence ignored",
			input:     "```\n(x)[y]\n```\n",
			wantCount: 0,
			wantFix:   "```\n(x)[y]\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewReversedLinkRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

func TestInlineHTMLRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		fl        flavor.Name
		wantCount int
		options   map[string]any
	}{
		{
			name:      "no html",
			input:     "plain text\n",
			fl:        flavor.Default,
			wantCount: 0,
		},
		{
			name:      "single raw tag",
			input:     "text <br> here\n",
			fl:        flavor.Default,
			wantCount: 1,
		},
		{
			name:      "open and close tags flagged separately",
			input:     "<b>bold</b> text\n",
			fl:        flavor.Default,
			wantCount: 2,
		},
		{
			name:      "allow-listed element",
			input:     "text <br> here\n",
			fl:        flavor.Default,
			wantCount: 0,
			options:   map[string]any{"allowed_elements": []string{"br"}},
		},
		{
			name:      "allow list is case-insensitive",
			input:     "text <BR> here\n",
			fl:        flavor.Default,
			wantCount: 0,
			options:   map[string]any{"allowed_elements": []string{"br"}},
		},
		{
			name:      "mkdocs accepts inline html",
			input:     "<b>bold</b> text\n",
			fl:        flavor.MkDocs,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewInlineHTMLRule()
			violations := checkRule(t, rule, tt.input, flavor.Get(tt.fl), tt.options)
			assert.Len(t, violations, tt.wantCount)
		})
	}
}

func TestNoBareURLsRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "bare url wrapped",
			input:     "Visit https://example.com today\n",
			wantCount: 1,
			wantFix:   "Visit <https://example.com> today\n",
		},
		{
			name:      "trailing punctuation stays outside",
			input:     "See https://example.com.\n",
			wantCount: 1,
			wantFix:   "See <https://example.com>.\n",
		},
		{
			name:      "autolink untouched",
			input:     "Already <https://example.com> wrapped\n",
			wantCount: 0,
			wantFix:   "Already <https://example.com> wrapped\n",
		},
		{
			name:      "link destination untouched",
			input:     "[site](https://example.com)\n",
			wantCount: 0,
			wantFix:   "[site](https://example.com)\n",
		},
		{
			name:      "url in code span untouched",
			input:     "run `curl https://example.com` locally\n",
			wantCount: 0,
			wantFix:   "run `curl https://example.com` locally\n",
		},
		{
			name:      "url in code fence untouched",
			input:     "```\nhttps://example.com\n```\n",
			wantCount: 0,
			wantFix:   "```\nhttps://example.com\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewNoBareURLsRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

// A bare URL carries no bracket, bang, angle, or digit byte, so the skip
// fast path must key on the URL scan itself.
func TestNoBareURLsRuleSkipsOnlyWithoutURLs(t *testing.T) {
	rule := NewNoBareURLsRule()

	rc := buildContext(t, "visit http://example.com now\n", defaultFlavor(), nil, rule.ID())
	assert.False(t, rule.ShouldSkip(rc))
	assert.Len(t, rule.Check(rc), 1)

	clean := buildContext(t, "plain prose, no urls here\n", defaultFlavor(), nil, rule.ID())
	assert.True(t, rule.ShouldSkip(clean))
}

func TestLinkSpacesRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "tight link text",
			input:     "[good](url)\n",
			wantCount: 0,
			wantFix:   "[good](url)\n",
		},
		{
			name:      "padded both sides",
			input:     "[ padded ](url)\n",
			wantCount: 1,
			wantFix:   "[padded](url)\n",
		},
		{
			name:      "leading space only",
			input:     "[ lead](url)\n",
			wantCount: 1,
			wantFix:   "[lead](url)\n",
		},
		{
			name:      "padded image alt",
			input:     "![ alt ](i.png)\n",
			wantCount: 1,
			wantFix:   "![alt](i.png)\n",
		},
		{
			name:      "interior spaces kept",
			input:     "[two words](url)\n",
			wantCount: 0,
			wantFix:   "[two words](url)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewLinkSpacesRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

func TestEmptyLinkRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
	}{
		{
			name:      "empty destination",
			input:     "[click]()\n",
			wantCount: 1,
		},
		{
			name:      "bare fragment",
			input:     "[click](#)\n",
			wantCount: 1,
		},
		{
			name:      "named fragment is fine",
			input:     "[click](#section)\n",
			wantCount: 0,
		},
		{
			name:      "real destination",
			input:     "[click](https://example.com)\n",
			wantCount: 0,
		},
		{
			name:      "empty image handled elsewhere",
			input:     "![](i.png)\n",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewEmptyLinkRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
		})
	}
}

func TestImageAltTextRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
	}{
		{
			name:      "alt text present",
			input:     "![diagram](i.png)\n",
			wantCount: 0,
		},
		{
			name:      "empty alt",
			input:     "![](i.png)\n",
			wantCount: 1,
		},
		{
			name:      "whitespace alt",
			input:     "![   ](i.png)\n",
			wantCount: 1,
		},
		{
			name:      "links are not images",
			input:     "[](i.png)\n",
			wantCount: 0,
		},
		{
			name:      "no images at all",
			input:     "plain text\n",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewImageAltTextRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
		})
	}
}

func TestReferenceLinksRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		fl        flavor.Name
		wantCount int
	}{
		{
			name:      "defined label",
			input:     "[text][label]\n\n[label]: https://example.com\n",
			fl:        flavor.Default,
			wantCount: 0,
		},
		{
			name:      "missing label",
			input:     "[text][missing]\n",
			fl:        flavor.Default,
			wantCount: 1,
		},
		{
			name:      "collapsed reference",
			input:     "[label][]\n\n[label]: https://example.com\n",
			fl:        flavor.Default,
			wantCount: 0,
		},
		{
			name:      "labels match case-insensitively",
			input:     "[text][MiXeD]\n\n[mixed]: https://example.com\n",
			fl:        flavor.Default,
			wantCount: 0,
		},
		{
			name:      "inline link is not a reference",
			input:     "[text](https://example.com)\n",
			fl:        flavor.Default,
			wantCount: 0,
		},
		{
			name:      "wiki link exempt under obsidian",
			input:     "see [[target page][alias]] here\n",
			fl:        flavor.Obsidian,
			wantCount: 0,
		},
		{
			name:      "wiki link syntax flagged elsewhere",
			input:     "see [[target page][alias]] here\n",
			fl:        flavor.Default,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewReferenceLinksRule()
			violations := checkRule(t, rule, tt.input, flavor.Get(tt.fl), nil)
			assert.Len(t, violations, tt.wantCount)
			for _, v := range violations {
				assert.Contains(t, v.Message, "not defined")
			}
		})
	}
}
