// Package runner fans a batch of documents out over the lint pipeline.
package runner

import (
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/flavor"
)

// Document is one in-memory unit of work. The runner never touches the
// filesystem; callers hand it named content and get outcomes back.
type Document struct {
	// Name identifies the document in outcomes, typically a file path
	// or "<stdin>".
	Name string

	// Content is the raw document bytes.
	Content []byte
}

// Options controls a batch run.
type Options struct {
	// RuleSet is the resolved configuration for this run. Nil means all
	// defaults.
	RuleSet *config.RuleSet

	// Flavor selects the dialect applied to every document in the batch.
	Flavor flavor.Flavor

	// Fix runs the multi-pass fix loop instead of a single check sweep.
	Fix bool

	// Jobs caps the number of documents processed concurrently.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// effectiveJobs returns the worker limit, bounded by the batch size.
func (o Options) effectiveJobs(batch, auto int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = auto
	}
	if jobs > batch {
		jobs = batch
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}
