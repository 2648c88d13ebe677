package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// TrailingWhitespaceRule checks for trailing whitespace on lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"MD009",
			"no-trailing-spaces",
			"Lines should not have trailing spaces",
			[]string{"whitespace"},
			true,
		),
	}
}

// Check flags trailing whitespace, allowing the configured hard-break run.
func (r *TrailingWhitespaceRule) Check(rc *lint.Context) []lint.Violation {
	brSpaces := rc.OptionInt("br_spaces", 2)
	strict := rc.OptionBool("strict", false)
	ignoreCode := rc.OptionBool("ignore_code_blocks", false)

	var violations []lint.Violation
	for ln := 1; ln <= rc.Facts.LineCount(); ln++ {
		if ignoreCode && rc.Facts.InCode(ln) {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		text := rc.Doc.LineText(ln)

		trail := 0
		for trail < len(text) && (text[len(text)-1-trail] == ' ' || text[len(text)-1-trail] == '\t') {
			trail++
		}
		if trail == 0 || trail == len(text) {
			// Whitespace-only lines are blank lines, not trailing space.
			continue
		}
		if !strict && trail == brSpaces && !strings.ContainsRune(string(text[len(text)-trail:]), '\t') {
			// A hard line break.
			continue
		}

		span := mdtext.NewSpan(li.TextEnd-trail, li.TextEnd)
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "Trailing whitespace").
				WithDeletion().
				Build(rc.Doc))
	}
	return violations
}

// HardTabsRule checks for hard tab characters.
type HardTabsRule struct {
	lint.BaseRule
}

// NewHardTabsRule creates a new hard tabs rule.
func NewHardTabsRule() *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"MD010",
			"no-hard-tabs",
			"Hard tabs should not be used",
			[]string{"whitespace", "hard_tab"},
			true,
		),
	}
}

// ShouldSkip skips documents with no tab bytes at all.
func (r *HardTabsRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasHardTabs()
}

// Check flags each tab run and proposes a space replacement.
func (r *HardTabsRule) Check(rc *lint.Context) []lint.Violation {
	spacesPerTab := rc.OptionInt("spaces_per_tab", 4)
	checkCode := rc.OptionBool("code_blocks", true)

	var violations []lint.Violation
	for ln := 1; ln <= rc.Facts.LineCount(); ln++ {
		if !checkCode && rc.Facts.InCode(ln) {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		text := rc.Doc.LineText(ln)

		for i := 0; i < len(text); i++ {
			if text[i] != '\t' {
				continue
			}
			run := i
			for run < len(text) && text[run] == '\t' {
				run++
			}
			span := mdtext.NewSpan(li.Start+i, li.Start+run)
			violations = append(violations,
				lint.NewViolation(r.ID(), span, "Hard tabs").
					WithReplacement(strings.Repeat(" ", spacesPerTab*(run-i))).
					Build(rc.Doc))
			i = run - 1
		}
	}
	return violations
}

// MultipleBlankLinesRule checks for runs of consecutive blank lines.
type MultipleBlankLinesRule struct {
	lint.BaseRule
}

// NewMultipleBlankLinesRule creates a new multiple blank lines rule.
func NewMultipleBlankLinesRule() *MultipleBlankLinesRule {
	return &MultipleBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD012",
			"no-multiple-blanks",
			"Multiple consecutive blank lines",
			[]string{"whitespace", "blank_lines"},
			true,
		),
	}
}

// Check collapses each run of blanks beyond the allowed maximum with a
// single deletion covering the surplus lines.
func (r *MultipleBlankLinesRule) Check(rc *lint.Context) []lint.Violation {
	maximum := rc.OptionInt("maximum", 1)
	if maximum < 1 {
		maximum = 1
	}

	var violations []lint.Violation
	run := 0
	for ln := 1; ln <= rc.Facts.LineCount()+1; ln++ {
		lf := rc.Facts.Line(ln)
		blank := ln <= rc.Facts.LineCount() && lf.Blank &&
			!lf.InCode && !lf.FrontMatter && !lf.InMath
		if blank {
			run++
			continue
		}
		if run > maximum {
			// Delete from the end of the allowed run to the end of the
			// surplus.
			firstExtra := ln - run + maximum
			span := mdtext.NewSpan(rc.Doc.Lines[firstExtra-1].Start, rc.Doc.Lines[ln-2].End)
			violations = append(violations,
				lint.NewViolation(r.ID(), span,
					fmt.Sprintf("Multiple consecutive blank lines (%d, expected %d)", run, maximum)).
					WithDeletion().
					Build(rc.Doc))
		}
		run = 0
	}
	return violations
}

// FinalNewlineRule ensures files end with a single newline.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates a new final newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"MD047",
			"single-trailing-newline",
			"Files should end with a single newline character",
			[]string{"blank_lines"},
			true,
		),
	}
}

// Check verifies the file ends with exactly one newline.
func (r *FinalNewlineRule) Check(rc *lint.Context) []lint.Violation {
	content := rc.Doc.Content
	if len(content) == 0 {
		return nil
	}

	if content[len(content)-1] != '\n' {
		span := mdtext.NewSpan(len(content), len(content))
		return []lint.Violation{
			lint.NewViolation(r.ID(), span, "File should end with a single newline").
				WithEdit(fix.Insert(len(content), "\n")).
				Build(rc.Doc),
		}
	}

	// Trim surplus trailing newlines down to one.
	end := len(content)
	for end > 0 && content[end-1] == '\n' {
		end--
		if end > 0 && content[end-1] == '\r' {
			end--
		}
	}
	tail := content[end:]
	if string(tail) == "\n" || string(tail) == "\r\n" {
		return nil
	}
	span := mdtext.NewSpan(end, len(content))
	return []lint.Violation{
		lint.NewViolation(r.ID(), span, "File should end with a single newline").
			WithReplacement("\n").
			Build(rc.Doc),
	}
}
