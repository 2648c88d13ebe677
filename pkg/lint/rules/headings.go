package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// HeadingIncrementRule checks that heading levels increment by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Heading levels should only increment by one level at a time",
			[]string{"headings"},
			false,
		),
	}
}

// ShouldSkip skips documents without heading marker characters.
func (r *HeadingIncrementRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHeadings()
}

// Check walks headings in document order and flags level jumps.
func (r *HeadingIncrementRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	prev := 0
	for _, ln := range rc.Facts.HeadingLines() {
		level := rc.Facts.HeadingLevelAt(ln)
		if level == 0 {
			continue
		}
		if prev > 0 && level > prev+1 {
			violations = append(violations,
				lint.NewViolation(r.ID(), rc.Doc.LineSpan(ln),
					fmt.Sprintf("Heading level %d follows level %d", level, prev)).
					Build(rc.Doc))
		}
		prev = level
	}
	return violations
}

// NoMissingSpaceATXRule checks for a space between the hash run and text.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates a new missing space ATX rule.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD018",
			"no-missing-space-atx",
			"No space after hash on atx style heading",
			[]string{"headings", "atx", "spaces"},
			true,
		),
	}
}

// ShouldSkip skips documents without '#' bytes.
func (r *NoMissingSpaceATXRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Hash == 0
}

// Check flags unspaced markers and inserts the missing space.
func (r *NoMissingSpaceATXRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, ln := range rc.Facts.HeadingLines() {
		lf := rc.Facts.Line(ln)
		if lf.HeadingLevel == 0 || lf.HeadingSpaced {
			continue
		}
		span := mdtext.NewSpan(lf.HeadingMarkerEnd-lf.HeadingLevel, lf.HeadingMarkerEnd)
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "No space after hash on atx style heading").
				WithEdit(fix.Insert(lf.HeadingMarkerEnd, " ")).
				Build(rc.Doc))
	}
	return violations
}

// NoMultipleSpaceATXRule checks for extra spaces after the hash run.
type NoMultipleSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceATXRule creates a new multiple space ATX rule.
func NewNoMultipleSpaceATXRule() *NoMultipleSpaceATXRule {
	return &NoMultipleSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD019",
			"no-multiple-space-atx",
			"Multiple spaces after hash on atx style heading",
			[]string{"headings", "atx", "spaces"},
			true,
		),
	}
}

// ShouldSkip skips documents without '#' bytes.
func (r *NoMultipleSpaceATXRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Hash == 0
}

// Check collapses multi-space gaps between the marker and the text.
func (r *NoMultipleSpaceATXRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, ln := range rc.Facts.HeadingLines() {
		lf := rc.Facts.Line(ln)
		if lf.HeadingLevel == 0 || !lf.HeadingSpaced {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		gap := 0
		for off := lf.HeadingMarkerEnd; off < li.TextEnd && rc.Doc.Content[off] == ' '; off++ {
			gap++
		}
		if gap <= 1 || lf.HeadingMarkerEnd+gap >= li.TextEnd {
			continue
		}
		span := mdtext.NewSpan(lf.HeadingMarkerEnd, lf.HeadingMarkerEnd+gap)
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "Multiple spaces after hash on atx style heading").
				WithReplacement(" ").
				Build(rc.Doc))
	}
	return violations
}

// HeadingBlankLinesRule checks that headings are surrounded by blank lines.
type HeadingBlankLinesRule struct {
	lint.BaseRule
}

// NewHeadingBlankLinesRule creates a new heading blank lines rule.
func NewHeadingBlankLinesRule() *HeadingBlankLinesRule {
	return &HeadingBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD022",
			"blanks-around-headings",
			"Headings should be surrounded by blank lines",
			[]string{"headings", "blank_lines"},
			true,
		),
	}
}

// ShouldSkip skips documents without heading marker characters.
func (r *HeadingBlankLinesRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHeadings()
}

// Check verifies one blank line above and below each heading.
func (r *HeadingBlankLinesRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, ln := range rc.Facts.HeadingLines() {
		if rc.Facts.HeadingLevelAt(ln) == 0 {
			continue
		}

		// Setext headings extend over their underline.
		last := ln
		if rc.Facts.Line(ln).HeadingLevel == 0 {
			last = ln + 1
		}

		if ln > 1 {
			above := rc.Facts.Line(ln - 1)
			if !above.Blank && !above.FrontMatter {
				violations = append(violations,
					lint.NewViolation(r.ID(), rc.Doc.LineSpan(ln),
						"Headings should be surrounded by blank lines").
						WithEdit(fix.Insert(rc.Doc.Lines[ln-1].Start, "\n")).
						Build(rc.Doc))
			}
		}

		if last < rc.Facts.LineCount() && !rc.Facts.Line(last+1).Blank {
			violations = append(violations,
				lint.NewViolation(r.ID(), rc.Doc.LineSpan(last),
					"Headings should be surrounded by blank lines").
					WithEdit(fix.Insert(rc.Doc.Lines[last-1].End, "\n")).
					Build(rc.Doc))
		}
	}
	return violations
}

// HeadingStartLeftRule checks that headings start at the line start.
type HeadingStartLeftRule struct {
	lint.BaseRule
}

// NewHeadingStartLeftRule creates a new heading start left rule.
func NewHeadingStartLeftRule() *HeadingStartLeftRule {
	return &HeadingStartLeftRule{
		BaseRule: lint.NewBaseRule(
			"MD023",
			"heading-start-left",
			"Headings must start at the beginning of the line",
			[]string{"headings", "spaces"},
			true,
		),
	}
}

// ShouldSkip skips documents without heading marker characters.
func (r *HeadingStartLeftRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHeadings()
}

// Check deletes the indent in front of heading markers.
func (r *HeadingStartLeftRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, ln := range rc.Facts.HeadingLines() {
		lf := rc.Facts.Line(ln)
		if lf.BlockquoteDepth > 0 || lf.Indent == 0 {
			continue
		}
		if rc.Facts.HeadingLevelAt(ln) == 0 {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		span := mdtext.NewSpan(li.Start, li.Start+lf.Indent)
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "Headings must start at the beginning of the line").
				WithDeletion().
				Build(rc.Doc))
	}
	return violations
}

// SingleH1Rule checks for multiple top-level headings.
type SingleH1Rule struct {
	lint.BaseRule
}

// NewSingleH1Rule creates a new single H1 rule.
func NewSingleH1Rule() *SingleH1Rule {
	return &SingleH1Rule{
		BaseRule: lint.NewBaseRule(
			"MD025",
			"single-h1",
			"Multiple top-level headings in the same document",
			[]string{"headings"},
			false,
		),
	}
}

// ShouldSkip skips documents without heading marker characters.
func (r *SingleH1Rule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHeadings()
}

// Check flags every top-level heading after the first.
func (r *SingleH1Rule) Check(rc *lint.Context) []lint.Violation {
	level := rc.OptionInt("level", 1)

	var violations []lint.Violation
	seen := false
	for _, ln := range rc.Facts.HeadingLines() {
		if rc.Facts.HeadingLevelAt(ln) != level {
			continue
		}
		if !seen {
			seen = true
			continue
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), rc.Doc.LineSpan(ln),
				"Multiple top-level headings in the same document").
				Build(rc.Doc))
	}
	return violations
}

// NoTrailingPunctuationRule checks for trailing punctuation in headings.
type NoTrailingPunctuationRule struct {
	lint.BaseRule
}

// NewNoTrailingPunctuationRule creates a new trailing punctuation rule.
func NewNoTrailingPunctuationRule() *NoTrailingPunctuationRule {
	return &NoTrailingPunctuationRule{
		BaseRule: lint.NewBaseRule(
			"MD026",
			"no-trailing-punctuation",
			"Trailing punctuation in heading",
			[]string{"headings"},
			true,
		),
	}
}

// ShouldSkip skips documents without heading marker characters.
func (r *NoTrailingPunctuationRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHeadings()
}

// Check deletes a trailing run of the configured punctuation characters.
func (r *NoTrailingPunctuationRule) Check(rc *lint.Context) []lint.Violation {
	punctuation := rc.OptionString("punctuation", ".,;:!")

	var violations []lint.Violation
	for _, ln := range rc.Facts.HeadingLines() {
		if rc.Facts.HeadingLevelAt(ln) == 0 {
			continue
		}
		start, end := headingTextBounds(rc, ln)
		if end <= start {
			continue
		}

		punctEnd := end
		for end > start && strings.IndexByte(punctuation, rc.Doc.Content[end-1]) >= 0 {
			end--
		}
		if end == punctEnd {
			continue
		}
		span := mdtext.NewSpan(end, punctEnd)
		violations = append(violations,
			lint.NewViolation(r.ID(), span,
				fmt.Sprintf("Trailing punctuation in heading %q", string(rc.Doc.Content[end:punctEnd]))).
				WithDeletion().
				Build(rc.Doc))
	}
	return violations
}

// headingTextBounds returns the byte extent of a heading's text on line
// ln: past the ATX marker and its spaces, stopping before any closing
// hash run and trailing whitespace. Works for setext text lines too.
func headingTextBounds(rc *lint.Context, ln int) (int, int) {
	lf := rc.Facts.Line(ln)
	li := rc.Doc.Lines[ln-1]

	start := li.Start + lf.Indent
	if lf.HeadingLevel > 0 {
		start = lf.HeadingMarkerEnd
	}
	content := rc.Doc.Content
	for start < li.TextEnd && (content[start] == ' ' || content[start] == '\t') {
		start++
	}

	end := li.TextEnd
	for end > start && (content[end-1] == ' ' || content[end-1] == '\t') {
		end--
	}

	// Closed ATX form: strip the trailing hash run and the gap before it.
	if lf.HeadingLevel > 0 {
		closed := end
		for closed > start && content[closed-1] == '#' {
			closed--
		}
		if closed < end && closed > start && (content[closed-1] == ' ' || content[closed-1] == '\t') {
			end = closed
			for end > start && (content[end-1] == ' ' || content[end-1] == '\t') {
				end--
			}
		}
	}
	return start, end
}
