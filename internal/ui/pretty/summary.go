package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfix/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordDocument        = "document"
	wordDocuments       = "documents"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 documents, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Violations == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d documents checked)", stats.Processed))
		if stats.EditsApplied > 0 {
			word := wordDocuments
			if stats.Modified == 1 {
				word = wordDocument
			}
			msg += ", " + s.Success.Render(fmt.Sprintf("%d fixed in %d %s", stats.EditsApplied, stats.Modified, word))
		}
		return msg + "\n"
	}

	var parts []string

	issueWord := "issues"
	if stats.Violations == 1 {
		issueWord = "issue"
	}

	var severityParts []string
	if errors := stats.BySeverity["error"]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings := stats.BySeverity["warning"]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos := stats.BySeverity["info"]; infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.Violations, issueWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.Violations, issueWord))
	}

	word := wordDocuments
	if stats.WithIssues == 1 {
		word = wordDocument
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.WithIssues, word))

	if stats.Fixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.Fixable)))
	}
	if stats.EditsApplied > 0 {
		fixedWord := wordDocuments
		if stats.Modified == 1 {
			fixedWord = wordDocument
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s", stats.EditsApplied, stats.Modified, fixedWord)))
	}
	if stats.NotConverged > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d did not converge", stats.NotConverged)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Documents checked:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.Processed)) + "\n")

	if stats.WithIssues > 0 {
		builder.WriteString("  Documents with issues: " +
			s.Failure.Render(strconv.Itoa(stats.WithIssues)) + "\n")
	}
	if stats.Modified > 0 {
		builder.WriteString("  Documents modified:   " +
			s.Success.Render(strconv.Itoa(stats.Modified)) + "\n")
	}
	if stats.Errored > 0 {
		builder.WriteString("  Documents errored:    " +
			s.Failure.Render(strconv.Itoa(stats.Errored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:         " +
		s.SummaryValue.Render(strconv.Itoa(stats.Violations)) + "\n")

	if errors := stats.BySeverity["error"]; errors > 0 {
		builder.WriteString("    Errors:             " +
			s.Error.Render(strconv.Itoa(errors)) + "\n")
	}
	if warnings := stats.BySeverity["warning"]; warnings > 0 {
		builder.WriteString("    Warnings:           " +
			s.Warning.Render(strconv.Itoa(warnings)) + "\n")
	}
	if infos := stats.BySeverity["info"]; infos > 0 {
		builder.WriteString("    Info:               " +
			s.Info.Render(strconv.Itoa(infos)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.BySeverity["error"] > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.BySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
