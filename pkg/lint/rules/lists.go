package rules

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// UnorderedListStyleRule checks that bullet markers are consistent.
type UnorderedListStyleRule struct {
	lint.BaseRule
}

// NewUnorderedListStyleRule creates a new unordered list style rule.
func NewUnorderedListStyleRule() *UnorderedListStyleRule {
	return &UnorderedListStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD004",
			"ul-style",
			"Unordered list style should be consistent",
			[]string{"bullet", "ul"},
			true,
		),
	}
}

// ShouldSkip skips documents without list marker characters.
func (r *UnorderedListStyleRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLists()
}

// Check flags bullets that deviate from the expected marker. With the
// default "consistent" style the first bullet in the document decides.
func (r *UnorderedListStyleRule) Check(rc *lint.Context) []lint.Violation {
	style := rc.OptionString("style", "consistent")
	var expected byte
	switch style {
	case "asterisk":
		expected = '*'
	case "dash":
		expected = '-'
	case "plus":
		expected = '+'
	}

	var violations []lint.Violation
	for _, ln := range rc.Facts.ListLines() {
		item := rc.Facts.Line(ln).List
		if item == nil || item.Ordered {
			continue
		}
		if expected == 0 {
			expected = item.Marker
			continue
		}
		if item.Marker == expected {
			continue
		}
		span := mdtext.NewSpan(item.MarkerStart, item.MarkerStart+1)
		violations = append(violations,
			lint.NewViolation(r.ID(), span,
				fmt.Sprintf("Unordered list style: expected %q, found %q", expected, item.Marker)).
				WithReplacement(string(expected)).
				Build(rc.Doc))
	}
	return violations
}

// ListIndentRule checks that sibling list items share their indentation.
type ListIndentRule struct {
	lint.BaseRule
}

// NewListIndentRule creates a new list indent rule.
func NewListIndentRule() *ListIndentRule {
	return &ListIndentRule{
		BaseRule: lint.NewBaseRule(
			"MD005",
			"list-indent",
			"Inconsistent indentation for list items at the same level",
			[]string{"bullet", "ul", "indentation"},
			true,
		),
	}
}

// ShouldSkip skips documents without list marker characters.
func (r *ListIndentRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLists()
}

// Check reports misaligned items. The fix runs through FixContent since
// re-indenting one item shifts the expected indent of everything nested
// under it.
func (r *ListIndentRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, issue := range listIndentIssues(rc.Facts) {
		item := rc.Facts.Line(issue.line).List
		li := rc.Doc.Lines[issue.line-1]
		span := mdtext.NewSpan(li.Start, item.MarkerStart)
		if span.IsEmpty() {
			span = mdtext.NewSpan(li.Start, li.Start+1)
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), span,
				fmt.Sprintf("Inconsistent indentation for list item (expected %d, found %d)",
					issue.expected, issue.actual)).
				Build(rc.Doc))
	}
	return violations
}

// FixContent re-indents misaligned list items wholesale, iterating until
// the layout is stable so nested levels settle in one call.
func (r *ListIndentRule) FixContent(content []byte, fl flavor.Flavor) []byte {
	for range 5 {
		cache := facts.Build(content, nil, fl)
		issues := listIndentIssues(cache)
		if len(issues) == 0 {
			return content
		}

		var buf bytes.Buffer
		byLine := make(map[int]int, len(issues))
		for _, issue := range issues {
			byLine[issue.line] = issue.expected
		}
		for ln := 1; ln <= cache.LineCount(); ln++ {
			li := cache.Doc.Lines[ln-1]
			if expected, ok := byLine[ln]; ok {
				item := cache.Line(ln).List
				buf.WriteString(strings.Repeat(" ", expected))
				buf.Write(cache.Doc.Content[item.MarkerStart:li.End])
			} else {
				buf.Write(cache.Doc.Content[li.Start:li.End])
			}
		}
		content = buf.Bytes()
	}
	return content
}

type indentIssue struct {
	line     int
	actual   int
	expected int
}

type indentLevel struct {
	indent     int
	contentCol int
}

// listIndentIssues finds items whose indent matches no open level: deeper
// than their siblings but shy of the parent's content column.
func listIndentIssues(c *facts.Cache) []indentIssue {
	var issues []indentIssue
	var stack []indentLevel
	last := 0

	for _, ln := range c.ListLines() {
		item := c.Line(ln).List
		if item == nil {
			continue
		}
		if last > 0 && listBlockBroken(c, last, ln) {
			stack = stack[:0]
		}
		last = ln

		li := c.Doc.Lines[ln-1]
		contentCol := item.ContentStart - li.Start

		for len(stack) > 0 && stack[len(stack)-1].indent > item.Indent {
			stack = stack[:len(stack)-1]
		}

		switch {
		case len(stack) == 0:
			stack = append(stack, indentLevel{item.Indent, contentCol})
		case stack[len(stack)-1].indent == item.Indent:
			// A sibling; its content column becomes the nesting threshold.
			stack[len(stack)-1].contentCol = contentCol
		case item.Indent >= stack[len(stack)-1].contentCol:
			// Genuinely nested under the previous item.
			stack = append(stack, indentLevel{item.Indent, contentCol})
		default:
			issues = append(issues, indentIssue{
				line:     ln,
				actual:   item.Indent,
				expected: stack[len(stack)-1].indent,
			})
		}
	}
	return issues
}

// listBlockBroken reports whether a non-blank unindented non-list line
// separates two list item lines.
func listBlockBroken(c *facts.Cache, from, to int) bool {
	for i := from + 1; i < to; i++ {
		lf := c.Line(i)
		if lf.Blank || lf.Indent > 0 || lf.InCode || lf.FenceOpen || lf.FenceClose {
			continue
		}
		if lf.List == nil {
			return true
		}
	}
	return false
}

// ULIndentRule checks unordered list nesting indent width.
type ULIndentRule struct {
	lint.BaseRule
}

// NewULIndentRule creates a new unordered list indent rule.
func NewULIndentRule() *ULIndentRule {
	return &ULIndentRule{
		BaseRule: lint.NewBaseRule(
			"MD007",
			"ul-indent",
			"Unordered list indentation",
			[]string{"bullet", "ul", "indentation"},
			true,
		),
	}
}

// ShouldSkip skips documents without list marker characters.
func (r *ULIndentRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLists()
}

// Check flags bullets indented off the configured step width.
func (r *ULIndentRule) Check(rc *lint.Context) []lint.Violation {
	indent := rc.OptionInt("indent", 2)
	if indent < 1 {
		indent = 2
	}

	var violations []lint.Violation
	for _, ln := range rc.Facts.ListLines() {
		item := rc.Facts.Line(ln).List
		if item == nil || item.Ordered || item.Indent%indent == 0 {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		rounded := (item.Indent / indent) * indent
		span := mdtext.NewSpan(li.Start, item.MarkerStart)
		violations = append(violations,
			lint.NewViolation(r.ID(), span,
				fmt.Sprintf("Unordered list indentation: expected a multiple of %d, found %d",
					indent, item.Indent)).
				WithReplacement(strings.Repeat(" ", rounded)).
				Build(rc.Doc))
	}
	return violations
}

// OrderedListPrefixRule checks ordered list numbering.
type OrderedListPrefixRule struct {
	lint.BaseRule
}

// NewOrderedListPrefixRule creates a new ordered list prefix rule.
func NewOrderedListPrefixRule() *OrderedListPrefixRule {
	return &OrderedListPrefixRule{
		BaseRule: lint.NewBaseRule(
			"MD029",
			"ol-prefix",
			"Ordered list item prefix",
			[]string{"ol"},
			true,
		),
	}
}

// ShouldSkip skips documents without digit characters.
func (r *OrderedListPrefixRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Digit == 0
}

// Check renumbers runs of ordered items. With the default style the
// second item decides between all-ones and incrementing numbering.
func (r *OrderedListPrefixRule) Check(rc *lint.Context) []lint.Violation {
	style := rc.OptionString("style", "one_or_ordered")

	var violations []lint.Violation
	for _, run := range orderedRuns(rc.Facts) {
		first := rc.Facts.Line(run[0]).List.Number
		increment := true
		switch style {
		case "one":
			increment = false
		case "ordered":
		default:
			if len(run) > 1 && rc.Facts.Line(run[1]).List.Number == first {
				increment = false
			}
		}

		for i, ln := range run {
			item := rc.Facts.Line(ln).List
			expected := first
			if increment {
				expected = first + i
			}
			if item.Number == expected {
				continue
			}
			span := mdtext.NewSpan(item.MarkerStart, item.MarkerEnd-1)
			violations = append(violations,
				lint.NewViolation(r.ID(), span,
					fmt.Sprintf("Ordered list item prefix: expected %d, found %d", expected, item.Number)).
					WithReplacement(strconv.Itoa(expected)).
					Build(rc.Doc))
		}
	}
	return violations
}

// orderedRuns groups consecutive ordered items sharing one indent.
func orderedRuns(c *facts.Cache) [][]int {
	var runs [][]int
	var cur []int
	last, indent := 0, -1

	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}

	for _, ln := range c.ListLines() {
		item := c.Line(ln).List
		if item == nil || !item.Ordered {
			continue
		}
		if len(cur) > 0 && (item.Indent != indent || listBlockBroken(c, last, ln)) {
			flush()
		}
		cur = append(cur, ln)
		last, indent = ln, item.Indent
	}
	flush()
	return runs
}

// ListMarkerSpaceRule checks spacing between marker and content.
type ListMarkerSpaceRule struct {
	lint.BaseRule
}

// NewListMarkerSpaceRule creates a new list marker space rule.
func NewListMarkerSpaceRule() *ListMarkerSpaceRule {
	return &ListMarkerSpaceRule{
		BaseRule: lint.NewBaseRule(
			"MD030",
			"list-marker-space",
			"Spaces after list markers",
			[]string{"ol", "ul", "whitespace"},
			true,
		),
	}
}

// ShouldSkip skips documents without list marker characters.
func (r *ListMarkerSpaceRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLists()
}

// Check collapses the gap after each marker to the expected width.
func (r *ListMarkerSpaceRule) Check(rc *lint.Context) []lint.Violation {
	expected := rc.OptionInt("spaces", 1)
	if expected < 1 {
		expected = 1
	}

	var violations []lint.Violation
	for _, ln := range rc.Facts.ListLines() {
		item := rc.Facts.Line(ln).List
		if item == nil {
			continue
		}
		li := rc.Doc.Lines[ln-1]
		if item.ContentStart >= li.TextEnd {
			// Empty item.
			continue
		}
		gap := item.ContentStart - item.MarkerEnd
		if gap == expected {
			continue
		}
		span := mdtext.NewSpan(item.MarkerEnd, item.ContentStart)
		violations = append(violations,
			lint.NewViolation(r.ID(), span,
				fmt.Sprintf("Spaces after list marker: expected %d, found %d", expected, gap)).
				WithReplacement(strings.Repeat(" ", expected)).
				Build(rc.Doc))
	}
	return violations
}

// BlanksAroundListsRule checks that lists are surrounded by blank lines.
type BlanksAroundListsRule struct {
	lint.BaseRule
}

// NewBlanksAroundListsRule creates a new blanks around lists rule.
func NewBlanksAroundListsRule() *BlanksAroundListsRule {
	return &BlanksAroundListsRule{
		BaseRule: lint.NewBaseRule(
			"MD032",
			"blanks-around-lists",
			"Lists should be surrounded by blank lines",
			[]string{"bullet", "ul", "ol", "blank_lines"},
			true,
		),
	}
}

// ShouldSkip skips documents without list marker characters.
func (r *BlanksAroundListsRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasLists()
}

// Check inserts blank lines at list block boundaries.
func (r *BlanksAroundListsRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, block := range listBlocks(rc.Facts) {
		first := block[0]
		if first > 1 {
			above := rc.Facts.Line(first - 1)
			if !above.Blank && !above.FrontMatter && above.HeadingLevel == 0 &&
				above.SetextUnderline == 0 {
				violations = append(violations,
					lint.NewViolation(r.ID(), rc.Doc.LineSpan(first),
						"Lists should be surrounded by blank lines").
						WithEdit(fix.Insert(rc.Doc.Lines[first-1].Start, "\n")).
						Build(rc.Doc))
			}
		}

		// Continuation lines extend the block past the last marker line.
		end := block[len(block)-1]
		for end < rc.Facts.LineCount() {
			next := rc.Facts.Line(end + 1)
			if !next.Blank && (next.Indent > 0 || next.List != nil || rc.Facts.InCode(end+1)) {
				end++
				continue
			}
			break
		}
		if end < rc.Facts.LineCount() && !rc.Facts.Line(end+1).Blank {
			violations = append(violations,
				lint.NewViolation(r.ID(), rc.Doc.LineSpan(end),
					"Lists should be surrounded by blank lines").
					WithEdit(fix.Insert(rc.Doc.Lines[end-1].End, "\n")).
					Build(rc.Doc))
		}
	}
	return violations
}

// listBlocks groups list item lines into contiguous blocks. Lines between
// items stay in the block while they are blank, indented, or code.
func listBlocks(c *facts.Cache) [][]int {
	var blocks [][]int
	var cur []int
	last := 0

	for _, ln := range c.ListLines() {
		if len(cur) > 0 && listBlockBroken(c, last, ln) {
			blocks = append(blocks, cur)
			cur = nil
		}
		cur = append(cur, ln)
		last = ln
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}
