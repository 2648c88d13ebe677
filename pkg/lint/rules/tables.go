package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// TablePipeStyleRule checks edge pipe consistency across table rows.
type TablePipeStyleRule struct {
	lint.BaseRule
}

// NewTablePipeStyleRule creates a new table pipe style rule.
func NewTablePipeStyleRule() *TablePipeStyleRule {
	return &TablePipeStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD055",
			"table-pipe-style",
			"Table pipe style",
			[]string{"table"},
			false,
		),
	}
}

// ShouldSkip skips documents without pipe characters.
func (r *TablePipeStyleRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasTables()
}

// Check flags rows whose leading or trailing pipes differ from the
// expected style. Under "consistent" the header row sets the style.
func (r *TablePipeStyleRule) Check(rc *lint.Context) []lint.Violation {
	style := rc.OptionString("style", "consistent")

	var violations []lint.Violation
	for _, tb := range rc.Facts.TableBlocks {
		wantLead, wantTrail, fixed := pipeStyleWants(style)
		for ln := tb.StartLine; ln <= tb.EndLine; ln++ {
			lead, trail := rowEdgePipes(rc.Doc.LineText(ln))
			if !fixed {
				wantLead, wantTrail, fixed = lead, trail, true
				continue
			}
			if lead == wantLead && trail == wantTrail {
				continue
			}
			li := rc.Doc.Lines[ln-1]
			violations = append(violations,
				lint.NewViolation(r.ID(), mdtext.NewSpan(li.Start, li.TextEnd),
					fmt.Sprintf("Table pipe style: expected %s", pipeStyleName(wantLead, wantTrail))).
					Build(rc.Doc))
		}
	}
	return violations
}

// pipeStyleWants maps a style option to edge pipe expectations. The
// third result is false when the first row must decide.
func pipeStyleWants(style string) (lead, trail, fixed bool) {
	switch style {
	case "leading_and_trailing":
		return true, true, true
	case "leading_only":
		return true, false, true
	case "trailing_only":
		return false, true, true
	case "no_leading_or_trailing":
		return false, false, true
	default:
		return false, false, false
	}
}

func pipeStyleName(lead, trail bool) string {
	switch {
	case lead && trail:
		return "leading_and_trailing"
	case lead:
		return "leading_only"
	case trail:
		return "trailing_only"
	default:
		return "no_leading_or_trailing"
	}
}

// rowEdgePipes reports whether a table row starts and ends with an
// unescaped pipe.
func rowEdgePipes(text []byte) (lead, trail bool) {
	trimmed := strings.TrimSpace(string(text))
	if trimmed == "" {
		return false, false
	}
	lead = trimmed[0] == '|'
	if strings.HasSuffix(trimmed, "|") && !strings.HasSuffix(trimmed, "\\|") {
		trail = true
	}
	return lead, trail
}

// TableColumnCountRule checks that every row has the header's columns.
type TableColumnCountRule struct {
	lint.BaseRule
}

// NewTableColumnCountRule creates a new table column count rule.
func NewTableColumnCountRule() *TableColumnCountRule {
	return &TableColumnCountRule{
		BaseRule: lint.NewBaseRule(
			"MD056",
			"table-column-count",
			"Table column count",
			[]string{"table"},
			false,
		),
	}
}

// ShouldSkip skips documents without pipe characters.
func (r *TableColumnCountRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasTables()
}

// Check flags rows whose cell count differs from the header row.
func (r *TableColumnCountRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, tb := range rc.Facts.TableBlocks {
		for ln := tb.StartLine; ln <= tb.EndLine; ln++ {
			lf := rc.Facts.Line(ln)
			if !lf.TableRow || lf.TableCols == tb.Cols {
				continue
			}
			li := rc.Doc.Lines[ln-1]
			violations = append(violations,
				lint.NewViolation(r.ID(), mdtext.NewSpan(li.Start, li.TextEnd),
					fmt.Sprintf("Table column count: expected %d, actual %d", tb.Cols, lf.TableCols)).
					Build(rc.Doc))
		}
	}
	return violations
}

// TableBlankLinesRule checks that tables are surrounded by blank lines.
type TableBlankLinesRule struct {
	lint.BaseRule
}

// NewTableBlankLinesRule creates a new table blank lines rule.
func NewTableBlankLinesRule() *TableBlankLinesRule {
	return &TableBlankLinesRule{
		BaseRule: lint.NewBaseRule(
			"MD058",
			"blanks-around-tables",
			"Tables should be surrounded by blank lines",
			[]string{"table", "blank_lines"},
			true,
		),
	}
}

// ShouldSkip skips documents without pipe characters.
func (r *TableBlankLinesRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasTables()
}

// Check inserts blank lines around tables that touch other content.
func (r *TableBlankLinesRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, tb := range rc.Facts.TableBlocks {
		if tb.StartLine > 1 {
			above := rc.Facts.Line(tb.StartLine - 1)
			if !above.Blank && !above.FrontMatter {
				li := rc.Doc.Lines[tb.StartLine-1]
				violations = append(violations,
					lint.NewViolation(r.ID(), mdtext.NewSpan(li.Start, li.Start),
						"Tables should be surrounded by blank lines").
						WithEdit(fix.Insert(li.Start, "\n")).
						Build(rc.Doc))
			}
		}
		if tb.EndLine < rc.Facts.LineCount() && !rc.Facts.Line(tb.EndLine+1).Blank {
			li := rc.Doc.Lines[tb.EndLine-1]
			violations = append(violations,
				lint.NewViolation(r.ID(), mdtext.NewSpan(li.End, li.End),
					"Tables should be surrounded by blank lines").
					WithEdit(fix.Insert(li.End, "\n")).
					Build(rc.Doc))
		}
	}
	return violations
}
