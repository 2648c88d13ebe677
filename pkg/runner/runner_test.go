package runner_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
	"github.com/yaklabco/mdfix/pkg/parser/goldmark"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// newRunner builds a runner over a registry holding only the final
// newline rule, so violation counts in tests stay predictable.
func newRunner() *runner.Runner {
	fl := flavor.Get(flavor.Default)
	registry := lint.NewRegistry()
	registry.Register(rules.NewFinalNewlineRule())
	engine := lint.NewEngine(goldmark.New(fl), registry)
	return runner.New(lint.NewPipeline(engine))
}

func defaultOptions() runner.Options {
	return runner.Options{
		RuleSet: config.NewRuleSet(),
		Flavor:  flavor.Get(flavor.Default),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(goldmark.New(flavor.Get(flavor.Default)), lint.NewRegistry()))
	r := runner.New(pipeline)
	if r.Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_EmptyBatch(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), nil, defaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("Outcomes = %d, want 0", len(result.Outcomes))
	}
	if result.HasIssues() {
		t.Error("HasIssues() = true for empty batch")
	}
}

func TestRunner_Run_CheckBatch(t *testing.T) {
	t.Parallel()

	docs := []runner.Document{
		{Name: "clean.md", Content: []byte("fine\n")},
		{Name: "first.md", Content: []byte("no newline")},
		{Name: "second.md", Content: []byte("also missing")},
	}

	result, err := newRunner().Run(context.Background(), docs, defaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Outcomes) != 3 {
		t.Fatalf("Outcomes = %d, want 3", len(result.Outcomes))
	}
	for i, doc := range docs {
		if result.Outcomes[i].Name != doc.Name {
			t.Errorf("Outcomes[%d].Name = %q, want %q", i, result.Outcomes[i].Name, doc.Name)
		}
	}
	if got := len(result.Outcomes[0].Violations); got != 0 {
		t.Errorf("clean document violations = %d, want 0", got)
	}
	if got := len(result.Outcomes[1].Violations); got != 1 {
		t.Errorf("first.md violations = %d, want 1", got)
	}

	stats := result.Stats
	if stats.Documents != 3 || stats.Processed != 3 || stats.Errored != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.WithIssues != 2 || stats.Violations != 2 || stats.Fixable != 2 {
		t.Errorf("issue stats = %+v", stats)
	}
	if stats.BySeverity[string(config.SeverityWarning)] != 2 {
		t.Errorf("BySeverity = %v", stats.BySeverity)
	}
	if !result.HasIssues() {
		t.Error("HasIssues() = false")
	}
	if result.HasFailures() {
		t.Error("HasFailures() = true with warning severities only")
	}
}

func TestRunner_Run_FixBatch(t *testing.T) {
	t.Parallel()

	docs := []runner.Document{
		{Name: "clean.md", Content: []byte("fine\n")},
		{Name: "first.md", Content: []byte("no newline")},
		{Name: "second.md", Content: []byte("also missing")},
	}

	opts := defaultOptions()
	opts.Fix = true
	opts.RuleSet.Fix = true

	result, err := newRunner().Run(context.Background(), docs, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := string(result.Outcomes[1].Fix.Output); got != "no newline\n" {
		t.Errorf("fixed output = %q", got)
	}
	if result.Outcomes[0].Fix.Modified {
		t.Error("clean document reported as modified")
	}

	stats := result.Stats
	if stats.Modified != 2 || stats.EditsApplied != 2 {
		t.Errorf("fix stats = %+v", stats)
	}
	if stats.Violations != 0 {
		t.Errorf("remaining violations = %d, want 0", stats.Violations)
	}
	if stats.NotConverged != 0 {
		t.Errorf("NotConverged = %d, want 0", stats.NotConverged)
	}
}

func TestRunner_Run_InputOrderPreserved(t *testing.T) {
	t.Parallel()

	var docs []runner.Document
	for i := range 16 {
		docs = append(docs, runner.Document{
			Name:    fmt.Sprintf("doc-%02d.md", i),
			Content: []byte("content\n"),
		})
	}

	opts := defaultOptions()
	opts.Jobs = 3

	result, err := newRunner().Run(context.Background(), docs, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, doc := range docs {
		if result.Outcomes[i].Name != doc.Name {
			t.Fatalf("Outcomes[%d].Name = %q, want %q", i, result.Outcomes[i].Name, doc.Name)
		}
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []runner.Document{{Name: "a.md", Content: []byte("text\n")}}
	_, err := newRunner().Run(ctx, docs, defaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunner_Run_ErrorSeverityFails(t *testing.T) {
	t.Parallel()

	opts := defaultOptions()
	severity := string(config.SeverityError)
	opts.RuleSet.Rules = map[string]config.RuleConfig{
		"MD047": {Severity: &severity},
	}

	docs := []runner.Document{{Name: "a.md", Content: []byte("no newline")}}
	result, err := newRunner().Run(context.Background(), docs, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false with an error-severity violation")
	}
}
