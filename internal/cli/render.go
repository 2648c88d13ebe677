package cli

import (
	"fmt"
	"io"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// renderOutcomes prints per-document findings to out and processing
// errors to errOut. Source context lines come from the fixed content
// when a fix ran, so the caret points at what the reader will see on
// disk after the command finishes.
func renderOutcomes(out, errOut io.Writer, styles *pretty.Styles, docs []runner.Document, result *runner.Result, showContext bool) {
	for i, outcome := range result.Outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", outcome.Name, outcome.Err)
			continue
		}
		if len(outcome.Violations) == 0 {
			continue
		}

		content := docs[i].Content
		if outcome.Fix != nil {
			content = outcome.Fix.Output
		}

		fmt.Fprint(out, styles.FormatDocumentHeader(outcome.Name, len(outcome.Violations)))
		for j := range outcome.Violations {
			v := &outcome.Violations[j]
			line := ""
			if showContext {
				line = sourceLine(content, v.StartLine)
			}
			fmt.Fprint(out, styles.FormatViolation(outcome.Name, v, showContext, line))
		}
		fmt.Fprintln(out)
	}
}
