package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/lint"
)

// Runner processes batches of documents through a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-document processing.
	Pipeline *lint.Pipeline
}

// New creates a Runner around the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run processes the batch concurrently and returns outcomes in input
// order plus aggregate stats. Documents are independent: one failing
// never blocks the others, and per-document errors land in the outcome
// rather than aborting the run. The returned error is non-nil only for
// cancellation.
func (r *Runner) Run(ctx context.Context, docs []Document, opts Options) (*Result, error) {
	result := &Result{
		Outcomes: make([]Outcome, len(docs)),
		Stats:    newStats(len(docs)),
	}
	if len(docs) == 0 {
		return result, nil
	}

	jobs := opts.effectiveJobs(len(docs), runtime.NumCPU())

	logging.FromContext(ctx).Debug("starting batch",
		logging.FieldDocuments, len(docs),
		logging.FieldJobs, jobs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i := range docs {
		g.Go(func() error {
			result.Outcomes[i] = r.process(gctx, docs[i], opts)
			return nil
		})
	}
	// Workers never return errors, so Wait only synchronizes.
	_ = g.Wait()

	for i := range result.Outcomes {
		result.Stats.accumulate(result.Outcomes[i])
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// process runs one document through a check sweep or the fix loop.
func (r *Runner) process(ctx context.Context, doc Document, opts Options) Outcome {
	out := Outcome{Name: doc.Name}

	if opts.Fix {
		fr, err := r.Pipeline.Fix(ctx, doc.Content, opts.RuleSet, opts.Flavor)
		if err != nil {
			out.Err = fmt.Errorf("fix %s: %w", doc.Name, err)
			return out
		}
		out.Fix = fr
		out.Violations = fr.Violations
		return out
	}

	sweep, err := r.Pipeline.Engine.Check(ctx, doc.Content, opts.RuleSet, opts.Flavor)
	if err != nil {
		out.Err = fmt.Errorf("check %s: %w", doc.Name, err)
		return out
	}
	out.Violations = sweep.Violations
	return out
}
