package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint"
)

// FormatViolation formats a single violation for terminal output.
// sourceLine, when non-empty with showContext set, is echoed under the
// finding with a caret at the start column.
func (s *Styles) FormatViolation(name string, v *lint.Violation, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.Name.Render(name),
		v.StartLine,
		v.StartColumn,
	)

	rule := v.RuleID
	if v.RuleName != "" {
		rule += "/" + v.RuleName
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s",
		location,
		s.FormatSeverity(v.Severity),
		s.Message.Render(v.Message),
		s.RuleID.Render("("+rule+")"),
	))
	if v.HasFix() {
		builder.WriteString(" " + s.Fixable.Render("[fixable]"))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.StartColumn))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 && column <= len(line)+1 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatDocumentHeader formats a per-document header for grouped output.
func (s *Styles) FormatDocumentHeader(name string, issueCount int) string {
	header := s.Name.Render(name)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
