package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingIncrementRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
	}{
		{
			name:      "sequential levels",
			input:     "# One\n\n## Two\n\n### Three\n",
			wantCount: 0,
		},
		{
			name:      "skipped level",
			input:     "# One\n\n### Three\n",
			wantCount: 1,
		},
		{
			name:      "going back up is fine",
			input:     "# One\n\n## Two\n\n# Another\n\n## Sub\n",
			wantCount: 0,
		},
		{
			name:      "first heading may be any level",
			input:     "### Deep start\n",
			wantCount: 0,
		},
		{
			name:      "setext counts as level one and two",
			input:     "Title\n=====\n\nSub\n---\n\n#### Jump\n",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checkRule(t, NewHeadingIncrementRule(), tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
		})
	}
}

func TestNoMissingSpaceATXRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "spaced heading",
			input:     "# Heading\n",
			wantCount: 0,
			wantFix:   "# Heading\n",
		},
		{
			name:      "missing space",
			input:     "#Heading\n",
			wantCount: 1,
			wantFix:   "# Heading\n",
		},
		{
			name:      "missing space on level three",
			input:     "###Deep\n",
			wantCount: 1,
			wantFix:   "### Deep\n",
		},
		{
			name:      "hash inside text is not a heading",
			input:     "Issue #42 is open\n",
			wantCount: 0,
			wantFix:   "Issue #42 is open\n",
		},
		{
			name:      "unspaced hash in code block ignored",
			input:     "```\n#!/bin/sh\n```\n",
			wantCount: 0,
			wantFix:   "```\n#!/bin/sh\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewNoMissingSpaceATXRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

func TestNoMultipleSpaceATXRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "single space",
			input:     "# Heading\n",
			wantCount: 0,
			wantFix:   "# Heading\n",
		},
		{
			name:      "double space collapses",
			input:     "#  Heading\n",
			wantCount: 1,
			wantFix:   "# Heading\n",
		},
		{
			name:      "many spaces collapse",
			input:     "##     Wide\n",
			wantCount: 1,
			wantFix:   "## Wide\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewNoMultipleSpaceATXRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

func TestHeadingBlankLinesRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "surrounded by blanks",
			input:     "text\n\n# Heading\n\nmore\n",
			wantCount: 0,
			wantFix:   "text\n\n# Heading\n\nmore\n",
		},
		{
			name:      "missing blank above",
			input:     "text\n# Heading\n\nmore\n",
			wantCount: 1,
			wantFix:   "text\n\n# Heading\n\nmore\n",
		},
		{
			name:      "missing blank below",
			input:     "# Heading\nmore\n",
			wantCount: 1,
			wantFix:   "# Heading\n\nmore\n",
		},
		{
			name:      "missing both",
			input:     "text\n# Heading\nmore\n",
			wantCount: 2,
			wantFix:   "text\n\n# Heading\n\nmore\n",
		},
		{
			name:      "heading at document start",
			input:     "# Heading\n\ntext\n",
			wantCount: 0,
			wantFix:   "# Heading\n\ntext\n",
		},
		{
			name:      "setext underline included",
			input:     "Title\n=====\nbody\n",
			wantCount: 1,
			wantFix:   "Title\n=====\n\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewHeadingBlankLinesRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

func TestHeadingStartLeftRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
	}{
		{
			name:      "flush left",
			input:     "# Heading\n",
			wantCount: 0,
			wantFix:   "# Heading\n",
		},
		{
			name:      "indented heading",
			input:     "  # Heading\n",
			wantCount: 1,
			wantFix:   "# Heading\n",
		},
		{
			name:      "blockquoted heading left alone",
			input:     "> # Quoted\n",
			wantCount: 0,
			wantFix:   "> # Quoted\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewHeadingStartLeftRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), nil)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), nil))
		})
	}
}

func TestSingleH1Rule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		options   map[string]any
	}{
		{
			name:      "single top-level heading",
			input:     "# Title\n\n## Section\n",
			wantCount: 0,
		},
		{
			name:      "two top-level headings",
			input:     "# One\n\n# Two\n",
			wantCount: 1,
		},
		{
			name:      "three top-level headings flag twice",
			input:     "# One\n\n# Two\n\n# Three\n",
			wantCount: 2,
		},
		{
			name:      "setext h1 counts",
			input:     "One\n===\n\n# Two\n",
			wantCount: 1,
		},
		{
			name:      "level option",
			input:     "## A\n\n## B\n",
			wantCount: 1,
			options:   map[string]any{"level": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checkRule(t, NewSingleH1Rule(), tt.input, defaultFlavor(), tt.options)
			assert.Len(t, violations, tt.wantCount)
		})
	}
}

func TestNoTrailingPunctuationRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantFix   string
		options   map[string]any
	}{
		{
			name:      "clean heading",
			input:     "# Heading\n",
			wantCount: 0,
			wantFix:   "# Heading\n",
		},
		{
			name:      "trailing period",
			input:     "# Heading.\n",
			wantCount: 1,
			wantFix:   "# Heading\n",
		},
		{
			name:      "trailing colon",
			input:     "## Setup:\n",
			wantCount: 1,
			wantFix:   "## Setup\n",
		},
		{
			name:      "question mark allowed by default",
			input:     "# Why?\n",
			wantCount: 0,
			wantFix:   "# Why?\n",
		},
		{
			name:      "closed atx keeps trailing hashes",
			input:     "# Heading. #\n",
			wantCount: 1,
			wantFix:   "# Heading #\n",
		},
		{
			name:      "custom punctuation set",
			input:     "# Why?\n",
			wantCount: 1,
			wantFix:   "# Why\n",
			options:   map[string]any{"punctuation": "?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewNoTrailingPunctuationRule()
			violations := checkRule(t, rule, tt.input, defaultFlavor(), tt.options)
			assert.Len(t, violations, tt.wantCount)
			assert.Equal(t, tt.wantFix, applyRuleFixes(t, rule, tt.input, defaultFlavor(), tt.options))
		})
	}
}

// The message quotes the offending punctuation run, not the heading text
// next to it.
func TestNoTrailingPunctuationRuleQuotesPunctuation(t *testing.T) {
	rule := NewNoTrailingPunctuationRule()

	violations := checkRule(t, rule, "# Heading:;\n", defaultFlavor(), nil)
	if assert.Len(t, violations, 1) {
		assert.Contains(t, violations[0].Message, `":;"`)
	}
}
