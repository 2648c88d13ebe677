package cli

import (
	"github.com/yaklabco/mdfix/pkg/runner"
)

// Exit codes for mdfix.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates the run completed but found error-severity
	// issues.
	ExitIssues = 1

	// ExitWarnings indicates the run found warnings under strict mode.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates document I/O errors.
	ExitIOError = 74
)

// ExitError reports that the run found issues and carries the process
// exit code. It matches ErrIssuesFound under errors.Is so callers can
// test for the condition without caring about the code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "issues found"
}

func (e *ExitError) Is(target error) bool {
	return target == ErrIssuesFound
}

// ExitCodeFromResult determines the exit code from a run result.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errors := result.Stats.BySeverity["error"]
	warnings := result.Stats.BySeverity["warning"]

	if errors > 0 || result.Stats.Errored > 0 {
		return ExitIssues
	}
	if strict && warnings > 0 {
		return ExitWarnings
	}
	return ExitSuccess
}
