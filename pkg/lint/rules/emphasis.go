package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// NoEmphasisAsHeadingRule checks for emphasis used instead of a heading.
type NoEmphasisAsHeadingRule struct {
	lint.BaseRule
}

// NewNoEmphasisAsHeadingRule creates a new emphasis as heading rule.
func NewNoEmphasisAsHeadingRule() *NoEmphasisAsHeadingRule {
	return &NoEmphasisAsHeadingRule{
		BaseRule: lint.NewBaseRule(
			"MD036",
			"no-emphasis-as-heading",
			"Emphasis used instead of a heading",
			[]string{"headings", "emphasis"},
			true,
		),
	}
}

// ShouldSkip skips documents without emphasis characters.
func (r *NoEmphasisAsHeadingRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasEmphasis()
}

// Check converts single-line emphasis paragraphs into headings by
// prepending a marker; the emphasis itself is left alone.
func (r *NoEmphasisAsHeadingRule) Check(rc *lint.Context) []lint.Violation {
	punctuation := rc.OptionString("punctuation", ".,;:!?")
	level := rc.OptionInt("level", 2)
	if level < 1 || level > 6 {
		level = 2
	}

	var violations []lint.Violation
	for _, em := range rc.Facts.Emphasis {
		ln := em.Line
		if !rc.Facts.IsTextLine(ln) {
			continue
		}
		// A one-line paragraph: blank or boundary on both sides.
		if ln > 1 && rc.Facts.IsTextLine(ln-1) {
			continue
		}
		if ln < rc.Facts.LineCount() && rc.Facts.IsTextLine(ln+1) {
			continue
		}

		li := rc.Doc.Lines[ln-1]
		text := strings.TrimSpace(string(rc.Doc.LineText(ln)))
		if string(em.Span.Text(rc.Doc.Content)) != text {
			continue
		}
		inner := strings.TrimSpace(string(em.Inner.Text(rc.Doc.Content)))
		if inner == "" || strings.IndexByte(punctuation, inner[len(inner)-1]) >= 0 {
			continue
		}

		violations = append(violations,
			lint.NewViolation(r.ID(), em.Span, "Emphasis used instead of a heading").
				WithEdit(fix.Insert(li.Start, strings.Repeat("#", level)+" ")).
				Build(rc.Doc))
	}
	return violations
}

// NoSpaceInEmphasisRule checks for space-padded emphasis markers.
type NoSpaceInEmphasisRule struct {
	lint.BaseRule
}

// NewNoSpaceInEmphasisRule creates a new no space in emphasis rule.
func NewNoSpaceInEmphasisRule() *NoSpaceInEmphasisRule {
	return &NoSpaceInEmphasisRule{
		BaseRule: lint.NewBaseRule(
			"MD037",
			"no-space-in-emphasis",
			"Spaces inside emphasis markers",
			[]string{"emphasis", "whitespace"},
			true,
		),
	}
}

// ShouldSkip skips documents without emphasis characters.
func (r *NoSpaceInEmphasisRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasEmphasis()
}

// Check scans text lines for marker pairs whose content is space padded.
// Padded markers never parse as emphasis, so this works on raw text.
func (r *NoSpaceInEmphasisRule) Check(rc *lint.Context) []lint.Violation {
	mathOK := rc.Allowed(flavor.ConstructMathBlock)

	var violations []lint.Violation
	for ln := 1; ln <= rc.Facts.LineCount(); ln++ {
		lf := rc.Facts.Line(ln)
		if lf.Blank || lf.FrontMatter || rc.Facts.InCode(ln) || lf.InMath || lf.MathFence {
			continue
		}
		text := string(rc.Doc.LineText(ln))
		base := rc.Doc.Lines[ln-1].Start

		for _, cand := range paddedEmphasisCandidates(text) {
			start := base + cand.start
			end := base + cand.end
			if facts.InSpan(rc.Facts.CodeSpans, start) {
				continue
			}
			if mathOK && insideDollars(text, cand.start) {
				continue
			}
			span := mdtext.NewSpan(start, end)
			markers := strings.Repeat(string(cand.marker), cand.level)
			violations = append(violations,
				lint.NewViolation(r.ID(), span, "Spaces inside emphasis markers").
					WithReplacement(markers+cand.trimmed+markers).
					Build(rc.Doc))
		}
	}
	return violations
}

type paddedCandidate struct {
	start, end int
	marker     byte
	level      int
	trimmed    string
}

// paddedEmphasisCandidates finds "* text *" style pairs on one line:
// equal marker runs of length 1 or 2 whose inner text is space padded
// on at least one side and contains no further markers.
func paddedEmphasisCandidates(text string) []paddedCandidate {
	var cands []paddedCandidate
	for i := 0; i < len(text); i++ {
		marker := text[i]
		if marker != '*' && marker != '_' {
			continue
		}
		level := 1
		if i+1 < len(text) && text[i+1] == marker {
			level = 2
		}
		open := i + level

		closeIdx := strings.Index(text[open:], strings.Repeat(string(marker), level))
		if closeIdx < 0 {
			break
		}
		closeIdx += open
		inner := text[open:closeIdx]
		trimmed := strings.TrimSpace(inner)

		if trimmed != "" && trimmed != inner &&
			!strings.ContainsAny(trimmed, "*_") {
			cands = append(cands, paddedCandidate{
				start:   i,
				end:     closeIdx + level,
				marker:  marker,
				level:   level,
				trimmed: trimmed,
			})
		}
		i = closeIdx + level - 1
	}
	return cands
}

// insideDollars reports whether idx sits between an odd number of '$'
// characters on the line, meaning inline math under math-aware flavors.
func insideDollars(text string, idx int) bool {
	count := 0
	for i := 0; i < idx && i < len(text); i++ {
		if text[i] == '$' {
			count++
		}
	}
	return count%2 == 1
}

// EmphasisStyleRule checks that emphasis markers are consistent.
type EmphasisStyleRule struct {
	lint.BaseRule
}

// NewEmphasisStyleRule creates a new emphasis style rule.
func NewEmphasisStyleRule() *EmphasisStyleRule {
	return &EmphasisStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD049",
			"emphasis-style",
			"Emphasis style should be consistent",
			[]string{"emphasis"},
			true,
		),
	}
}

// ShouldSkip skips documents without emphasis characters.
func (r *EmphasisStyleRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasEmphasis()
}

// Check rewrites off-style emphasis spans.
func (r *EmphasisStyleRule) Check(rc *lint.Context) []lint.Violation {
	return checkEmphasisStyle(rc, r.ID(), 1, rc.OptionString("style", "consistent"))
}

// StrongStyleRule checks that strong markers are consistent.
type StrongStyleRule struct {
	lint.BaseRule
}

// NewStrongStyleRule creates a new strong style rule.
func NewStrongStyleRule() *StrongStyleRule {
	return &StrongStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD050",
			"strong-style",
			"Strong style should be consistent",
			[]string{"emphasis"},
			true,
		),
	}
}

// ShouldSkip skips documents without emphasis characters.
func (r *StrongStyleRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasEmphasis()
}

// Check rewrites off-style strong spans.
func (r *StrongStyleRule) Check(rc *lint.Context) []lint.Violation {
	return checkEmphasisStyle(rc, r.ID(), 2, rc.OptionString("style", "consistent"))
}

// checkEmphasisStyle is shared by MD049 and MD050; level selects which
// emphasis facts the rule owns.
func checkEmphasisStyle(rc *lint.Context, ruleID string, level int, style string) []lint.Violation {
	var expected byte
	switch style {
	case "asterisk":
		expected = '*'
	case "underscore":
		expected = '_'
	}

	mathOK := rc.Allowed(flavor.ConstructMathBlock)

	var violations []lint.Violation
	for _, em := range rc.Facts.Emphasis {
		if em.Level != level {
			continue
		}
		if mathOK {
			text := string(rc.Doc.LineText(em.Line))
			if insideDollars(text, em.Span.Start-rc.Doc.Lines[em.Line-1].Start) {
				continue
			}
		}
		if expected == 0 {
			expected = em.Marker
			continue
		}
		if em.Marker == expected {
			continue
		}

		markers := strings.Repeat(string(expected), level)
		inner := string(em.Inner.Text(rc.Doc.Content))
		violations = append(violations,
			lint.NewViolation(ruleID, em.Span,
				fmt.Sprintf("Emphasis style: expected %q", markers)).
				WithReplacement(markers+inner+markers).
				Build(rc.Doc))
	}
	return violations
}
