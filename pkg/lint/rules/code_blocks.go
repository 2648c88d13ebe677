package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/langdetect"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// shellInfoStrings are info strings MD014 treats as command sessions.
var shellInfoStrings = map[string]bool{
	"": true, "bash": true, "sh": true, "shell": true, "console": true, "zsh": true,
}

// CommandsShowOutputRule checks for "$ " prompts without any output.
type CommandsShowOutputRule struct {
	lint.BaseRule
}

// NewCommandsShowOutputRule creates a new commands show output rule.
func NewCommandsShowOutputRule() *CommandsShowOutputRule {
	return &CommandsShowOutputRule{
		BaseRule: lint.NewBaseRule(
			"MD014",
			"commands-show-output",
			"Dollar signs used before commands without showing output",
			[]string{"code"},
			true,
		),
	}
}

// ShouldSkip skips documents without code characters.
func (r *CommandsShowOutputRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasCode() || rc.Facts.Counters.Dollar == 0
}

// Check deletes the prompt when every command line in a shell block
// carries one, meaning no output is shown.
func (r *CommandsShowOutputRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, cb := range rc.Facts.CodeBlocks {
		if !cb.Fenced || !shellInfoStrings[cb.Info] {
			continue
		}
		bodyStart := cb.StartLine + 1
		bodyEnd := cb.EndLine - 1
		if !cb.Terminated {
			bodyEnd = cb.EndLine
		}

		allPrompted := bodyEnd >= bodyStart
		var prompts []mdtext.Span
		for ln := bodyStart; ln <= bodyEnd; ln++ {
			text := rc.Doc.LineText(ln)
			trimmed := strings.TrimLeft(string(text), " ")
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, "$ ") {
				allPrompted = false
				break
			}
			off := rc.Doc.Lines[ln-1].Start + (len(text) - len(trimmed))
			prompts = append(prompts, mdtext.NewSpan(off, off+2))
		}
		if !allPrompted || len(prompts) == 0 {
			continue
		}

		for _, span := range prompts {
			violations = append(violations,
				lint.NewViolation(r.ID(), span,
					"Dollar signs used before commands without showing output").
					WithDeletion().
					Build(rc.Doc))
		}
	}
	return violations
}

// BlanksAroundFencesRule checks that fenced blocks have blank neighbors.
type BlanksAroundFencesRule struct {
	lint.BaseRule
}

// NewBlanksAroundFencesRule creates a new blanks around fences rule.
func NewBlanksAroundFencesRule() *BlanksAroundFencesRule {
	return &BlanksAroundFencesRule{
		BaseRule: lint.NewBaseRule(
			"MD031",
			"blanks-around-fences",
			"Fenced code blocks should be surrounded by blank lines",
			[]string{"code", "blank_lines"},
			true,
		),
	}
}

// ShouldSkip skips documents without code characters.
func (r *BlanksAroundFencesRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasCode()
}

// Check inserts blank lines around fenced blocks.
func (r *BlanksAroundFencesRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, cb := range rc.Facts.CodeBlocks {
		if !cb.Fenced {
			continue
		}

		if cb.StartLine > 1 {
			above := rc.Facts.Line(cb.StartLine - 1)
			if !above.Blank && !above.FrontMatter {
				violations = append(violations,
					lint.NewViolation(r.ID(), rc.Doc.LineSpan(cb.StartLine),
						"Fenced code blocks should be surrounded by blank lines").
						WithEdit(fix.Insert(rc.Doc.Lines[cb.StartLine-1].Start, "\n")).
						Build(rc.Doc))
			}
		}

		if cb.Terminated && cb.EndLine < rc.Facts.LineCount() &&
			!rc.Facts.Line(cb.EndLine+1).Blank {
			violations = append(violations,
				lint.NewViolation(r.ID(), rc.Doc.LineSpan(cb.EndLine),
					"Fenced code blocks should be surrounded by blank lines").
					WithEdit(fix.Insert(rc.Doc.Lines[cb.EndLine-1].End, "\n")).
					Build(rc.Doc))
		}
	}
	return violations
}

// NoSpaceInCodeRule checks for space padding inside code spans.
type NoSpaceInCodeRule struct {
	lint.BaseRule
}

// NewNoSpaceInCodeRule creates a new no space in code rule.
func NewNoSpaceInCodeRule() *NoSpaceInCodeRule {
	return &NoSpaceInCodeRule{
		BaseRule: lint.NewBaseRule(
			"MD038",
			"no-space-in-code",
			"Spaces inside code span elements",
			[]string{"code"},
			true,
		),
	}
}

// ShouldSkip skips documents without backticks.
func (r *NoSpaceInCodeRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Backtick == 0
}

// Check rewrites padded code spans without the padding.
func (r *NoSpaceInCodeRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, span := range rc.Facts.CodeSpans {
		text := string(span.Text(rc.Doc.Content))
		open := 0
		for open < len(text) && text[open] == '`' {
			open++
		}
		closeLen := 0
		for closeLen < len(text)-open && text[len(text)-1-closeLen] == '`' {
			closeLen++
		}
		inner := text[open : len(text)-closeLen]
		trimmed := strings.TrimSpace(inner)
		if trimmed == inner || trimmed == "" {
			continue
		}
		// One space on both sides is the CommonMark escape for content
		// with edge backticks; leave it alone when it matters.
		if strings.HasPrefix(inner, " ") && strings.HasSuffix(inner, " ") &&
			(strings.HasPrefix(trimmed, "`") || strings.HasSuffix(trimmed, "`")) {
			continue
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), span, "Spaces inside code span elements").
				WithReplacement(text[:open]+trimmed+text[len(text)-closeLen:]).
				Build(rc.Doc))
	}
	return violations
}

// FencedCodeLanguageRule checks that fenced blocks declare a language.
type FencedCodeLanguageRule struct {
	lint.BaseRule
}

// NewFencedCodeLanguageRule creates a new fenced code language rule.
func NewFencedCodeLanguageRule() *FencedCodeLanguageRule {
	return &FencedCodeLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"},
			true,
		),
	}
}

// ShouldSkip skips documents without code characters.
func (r *FencedCodeLanguageRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasCode()
}

// Check inserts a detected language at the info string position.
func (r *FencedCodeLanguageRule) Check(rc *lint.Context) []lint.Violation {
	var violations []lint.Violation
	for _, cb := range rc.Facts.CodeBlocks {
		if !cb.Fenced || cb.Info != "" {
			continue
		}

		bodyEnd := cb.EndLine - 1
		if !cb.Terminated {
			bodyEnd = cb.EndLine
		}
		var body []byte
		if bodyEnd >= cb.StartLine+1 {
			from := rc.Doc.Lines[cb.StartLine].Start
			to := rc.Doc.Lines[bodyEnd-1].End
			body = rc.Doc.Content[from:to]
		}

		violations = append(violations,
			lint.NewViolation(r.ID(), rc.Doc.LineSpan(cb.StartLine),
				"Fenced code blocks should have a language specified").
				WithEdit(fix.Insert(cb.InfoSpan.Start, langdetect.Detect(body))).
				Build(rc.Doc))
	}
	return violations
}

// CodeBlockStyleRule checks for one consistent code block style.
type CodeBlockStyleRule struct {
	lint.BaseRule
}

// NewCodeBlockStyleRule creates a new code block style rule.
func NewCodeBlockStyleRule() *CodeBlockStyleRule {
	return &CodeBlockStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD046",
			"code-block-style",
			"Code block style",
			[]string{"code"},
			false,
		),
	}
}

// ShouldSkip skips documents without code characters.
func (r *CodeBlockStyleRule) ShouldSkip(rc *lint.Context) bool {
	return !rc.Facts.LikelyHasCode()
}

// Check flags blocks of the off style. Admonition bodies look like
// indented code but are exempt when the flavor treats them as structure.
func (r *CodeBlockStyleRule) Check(rc *lint.Context) []lint.Violation {
	style := rc.OptionString("style", "fenced")

	wantFenced := true
	decided := style != "consistent"
	if style == "indented" {
		wantFenced = false
	}

	var violations []lint.Violation
	for _, cb := range rc.Facts.CodeBlocks {
		if cb.Admonition && rc.Allowed(flavor.ConstructAdmonition) {
			continue
		}
		if !decided {
			wantFenced = cb.Fenced
			decided = true
			continue
		}
		if cb.Fenced == wantFenced {
			continue
		}
		expected := "indented"
		if wantFenced {
			expected = "fenced"
		}
		violations = append(violations,
			lint.NewViolation(r.ID(), rc.Doc.LineSpan(cb.StartLine),
				fmt.Sprintf("Code block style: expected %s", expected)).
				Build(rc.Doc))
	}
	return violations
}

// CodeFenceStyleRule checks for one consistent fence marker.
type CodeFenceStyleRule struct {
	lint.BaseRule
}

// NewCodeFenceStyleRule creates a new code fence style rule.
func NewCodeFenceStyleRule() *CodeFenceStyleRule {
	return &CodeFenceStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD048",
			"code-fence-style",
			"Code fence style",
			[]string{"code"},
			true,
		),
	}
}

// ShouldSkip skips documents without fence characters.
func (r *CodeFenceStyleRule) ShouldSkip(rc *lint.Context) bool {
	return rc.Facts.Counters.Backtick == 0 && rc.Facts.Counters.Tilde == 0
}

// Check rewrites off-style fence runs, open and close lines separately
// so both land in the same pass.
func (r *CodeFenceStyleRule) Check(rc *lint.Context) []lint.Violation {
	style := rc.OptionString("style", "consistent")

	var expected byte
	switch style {
	case "backtick":
		expected = '`'
	case "tilde":
		expected = '~'
	}

	var violations []lint.Violation
	for _, cb := range rc.Facts.CodeBlocks {
		if !cb.Fenced {
			continue
		}
		if expected == 0 {
			expected = cb.Marker
			continue
		}
		if cb.Marker == expected {
			continue
		}
		// Backtick fences cannot carry backticks in their info string.
		if expected == '`' && strings.ContainsRune(cb.Info, '`') {
			continue
		}

		replacement := strings.Repeat(string(expected), cb.FenceLen)
		if span, ok := fenceRunSpan(rc, cb.StartLine, cb.Marker); ok {
			violations = append(violations,
				lint.NewViolation(r.ID(), span, "Code fence style").
					WithReplacement(replacement).
					Build(rc.Doc))
		}
		if cb.Terminated && cb.EndLine != cb.StartLine {
			if span, ok := fenceRunSpan(rc, cb.EndLine, cb.Marker); ok {
				violations = append(violations,
					lint.NewViolation(r.ID(), span, "Code fence style").
						WithReplacement(strings.Repeat(string(expected), span.Len())).
						Build(rc.Doc))
			}
		}
	}
	return violations
}

// fenceRunSpan locates the fence marker run on a fence line.
func fenceRunSpan(rc *lint.Context, ln int, marker byte) (mdtext.Span, bool) {
	text := rc.Doc.LineText(ln)
	li := rc.Doc.Lines[ln-1]
	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}
	start := i
	for i < len(text) && text[i] == marker {
		i++
	}
	if i == start {
		return mdtext.Span{}, false
	}
	return mdtext.NewSpan(li.Start+start, li.Start+i), true
}
