package fix

import (
	"fmt"
	"strings"
)

// LineKind classifies one line of a diff hunk.
type LineKind byte

const (
	// LineContext is an unchanged line shown around a change.
	LineContext LineKind = iota

	// LineAdded exists only in the rewritten content.
	LineAdded

	// LineRemoved exists only in the original content.
	LineRemoved
)

// DiffLine is one rendered line of a hunk, without its +/-/space prefix.
type DiffLine struct {
	Kind LineKind
	Text string
}

// Hunk is one run of changed lines plus the context around it.
type Hunk struct {
	// OldStart and NewStart are 1-based line numbers in the original and
	// rewritten content; the counts cover the lines this hunk spans.
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	Lines []DiffLine
}

// Diff is a unified line diff between the original content of one
// document and the fix engine's rewrite of it.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// NewDiff computes the unified diff from before to after. Returns nil
// when the two are line-identical, so callers can range over documents
// and print only real changes.
func NewDiff(path string, before, after []byte) *Diff {
	hunks := buildHunks(diffOps(toLines(before), toLines(after)))
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, h := range hunks {
		for _, line := range h.Lines {
			switch line.Kind {
			case LineAdded:
				d.Added++
			case LineRemoved:
				d.Removed++
			}
		}
	}
	return d
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", d.Path)
	fmt.Fprintf(&b, "+++ %s\n", d.Path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&b, " %s\n", line.Text)
			case LineAdded:
				fmt.Fprintf(&b, "+%s\n", line.Text)
			case LineRemoved:
				fmt.Fprintf(&b, "-%s\n", line.Text)
			}
		}
	}
	return b.String()
}

// toLines splits content on newlines, dropping the empty tail a final
// newline produces so a trailing-newline-only change still diffs cleanly.
func toLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffOps walks both line slices against an LCS table and emits the full
// op sequence: context lines where both sides agree, removals and
// additions where they diverge.
func diffOps(oldLines, newLines []string) []DiffLine {
	n, m := len(oldLines), len(newLines)

	// lcs[i][j] is the LCS length of oldLines[i:] and newLines[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var ops []DiffLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case oldLines[i] == newLines[j]:
			ops = append(ops, DiffLine{LineContext, oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, DiffLine{LineRemoved, oldLines[i]})
			i++
		default:
			ops = append(ops, DiffLine{LineAdded, newLines[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, DiffLine{LineRemoved, oldLines[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, DiffLine{LineAdded, newLines[j]})
	}
	return ops
}

// buildHunks groups the op sequence into hunks: each run of changes is
// padded with context lines, and runs closer than one context window are
// folded into the same hunk.
func buildHunks(ops []DiffLine) []Hunk {
	type span struct{ start, end int }

	var changes []span
	open := -1
	for idx, op := range ops {
		if op.Kind != LineContext {
			if open < 0 {
				open = idx
			}
			continue
		}
		if open >= 0 {
			changes = append(changes, span{open, idx})
			open = -1
		}
	}
	if open >= 0 {
		changes = append(changes, span{open, len(ops)})
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []Hunk
	for i := 0; i < len(changes); {
		j := i + 1
		for j < len(changes) && changes[j].start-changes[j-1].end <= diffContext*2 {
			j++
		}

		start := max(changes[i].start-diffContext, 0)
		end := min(changes[j-1].end+diffContext, len(ops))

		h := Hunk{OldStart: 1, NewStart: 1}
		for _, op := range ops[:start] {
			if op.Kind != LineAdded {
				h.OldStart++
			}
			if op.Kind != LineRemoved {
				h.NewStart++
			}
		}
		for _, op := range ops[start:end] {
			h.Lines = append(h.Lines, op)
			if op.Kind != LineAdded {
				h.OldCount++
			}
			if op.Kind != LineRemoved {
				h.NewCount++
			}
		}
		hunks = append(hunks, h)

		i = j
	}
	return hunks
}
