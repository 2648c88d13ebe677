package rules

import (
	"fmt"

	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// HRStyleRule checks horizontal rule consistency.
type HRStyleRule struct {
	lint.BaseRule
}

// NewHRStyleRule creates a new horizontal rule style rule.
func NewHRStyleRule() *HRStyleRule {
	return &HRStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD035",
			"hr-style",
			"Horizontal rule style",
			[]string{"hr"},
			true,
		),
	}
}

// ShouldSkip skips documents without any break marker bytes.
func (r *HRStyleRule) ShouldSkip(rc *lint.Context) bool {
	c := rc.Facts.Counters
	return c.Hyphen == 0 && c.Asterisk == 0 && c.Underscore == 0
}

// Check flags rules that differ from the expected text. Under
// "consistent" the first rule in the document sets the style.
func (r *HRStyleRule) Check(rc *lint.Context) []lint.Violation {
	expected := rc.OptionString("style", "consistent")
	if expected == "consistent" {
		expected = ""
	}

	var violations []lint.Violation
	for ln := 1; ln <= rc.Facts.LineCount(); ln++ {
		lf := rc.Facts.Line(ln)
		if !lf.ThematicBreak || rc.Facts.InCode(ln) {
			continue
		}
		if expected == "" {
			expected = lf.HRText
			continue
		}
		if lf.HRText == expected {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		violations = append(violations,
			lint.NewViolation(r.ID(), mdtext.NewSpan(li.Start, li.TextEnd),
				fmt.Sprintf("Horizontal rule style: expected %q", expected)).
				WithReplacement(expected).
				Build(rc.Doc))
	}
	return violations
}
