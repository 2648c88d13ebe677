package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldFlavor = "flavor"

	// Runner fields.
	FieldDocuments = "documents"
	FieldJobs      = "jobs"

	// Lint and fix fields.
	FieldRule       = "rule"
	FieldRules      = "rules"
	FieldViolations = "violations"
	FieldPass       = "pass"
	FieldPasses     = "passes"
	FieldEdits      = "edits"
	FieldDeferred   = "deferred"
	FieldConverged  = "converged"
	FieldFix        = "fix"

	// Statistics fields.
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldFilesModified   = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
