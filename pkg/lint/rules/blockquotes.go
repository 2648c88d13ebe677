package rules

import (
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// BlockquoteSpaceRule checks for multiple spaces after blockquote markers.
type BlockquoteSpaceRule struct {
	lint.BaseRule
}

// NewBlockquoteSpaceRule creates a new blockquote space rule.
func NewBlockquoteSpaceRule() *BlockquoteSpaceRule {
	return &BlockquoteSpaceRule{
		BaseRule: lint.NewBaseRule(
			"MD027",
			"no-multiple-space-blockquote",
			"Multiple spaces after blockquote symbol",
			[]string{"blockquote", "whitespace", "indentation"},
			true,
		),
	}
}

// ShouldSkip skips documents without '>' bytes.
func (r *BlockquoteSpaceRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasBlockquotes()
}

// Check collapses the run of spaces after the last '>' marker to one.
func (r *BlockquoteSpaceRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for ln := 1; ln <= rc.Facts.LineCount(); ln++ {
		lf := rc.Facts.Line(ln)
		if lf.BlockquoteDepth == 0 || rc.Facts.InCode(ln) {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		gap := 0
		for off := lf.BlockquoteEnd; off < li.TextEnd && rc.Doc.Content[off] == ' '; off++ {
			gap++
		}
		// A blank quote line or a single separating space is fine.
		if gap <= 1 || lf.BlockquoteEnd+gap >= li.TextEnd {
			continue
		}
		span := mdtext.NewSpan(lf.BlockquoteEnd, lf.BlockquoteEnd+gap)
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "Multiple spaces after blockquote symbol").
				WithReplacement(" ").
				Build(rc.Doc))
	}
	return violations
}

// BlankBlockquoteRule checks for blank lines splitting a blockquote.
type BlankBlockquoteRule struct {
	lint.BaseRule
}

// NewBlankBlockquoteRule creates a new blank blockquote rule.
func NewBlankBlockquoteRule() *BlankBlockquoteRule {
	return &BlankBlockquoteRule{
		BaseRule: lint.NewBaseRule(
			"MD028",
			"no-blanks-blockquote",
			"Blank line inside blockquote",
			[]string{"blockquote", "whitespace"},
			false,
		),
	}
}

// ShouldSkip skips documents without '>' bytes.
func (r *BlankBlockquoteRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasBlockquotes()
}

// Check flags blank lines with blockquote lines on both sides. There is
// no fix: the author must decide whether the quotes are one or two.
func (r *BlankBlockquoteRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for ln := 2; ln < rc.Facts.LineCount(); ln++ {
		lf := rc.Facts.Line(ln)
		if !lf.Blank || lf.FrontMatter || rc.Facts.InCode(ln) {
			continue
		}
		if rc.Facts.Line(ln - 1).BlockquoteDepth == 0 {
			continue
		}
		// Skip over the blank run so only its first line is reported.
		next := ln + 1
		for next <= rc.Facts.LineCount() && rc.Facts.Line(next).Blank {
			next++
		}
		if next > rc.Facts.LineCount() || rc.Facts.Line(next).BlockquoteDepth == 0 {
			ln = next
			continue
		}
		li := rc.Doc.Lines[ln-1]
		violations = append(violations,
			lint.NewViolation(r.ID(), mdtext.NewSpan(li.Start, li.TextEnd),
				"Blank line inside blockquote").Build(rc.Doc))
		ln = next
	}
	return violations
}
