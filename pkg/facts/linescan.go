package facts

import (
	"sort"
	"strings"

	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/mdtext"
)

// scanLines performs the single-pass per-line classification. It is the
// authoritative source for block facts: unlike the tokenizer, it keeps
// marker-level defects visible (a "#Heading" line is a heading with a
// missing space here, not a paragraph).
func (c *Cache) scanLines() {
	doc := c.Doc
	n := doc.LineCount()
	if n == 0 {
		return
	}

	first := 1
	if c.Flavor.Recognizes(flavor.ConstructFrontMatter) {
		first = c.scanFrontMatter()
	}

	mathOK := c.Flavor.Recognizes(flavor.ConstructMathBlock)
	admonOK := c.Flavor.Recognizes(flavor.ConstructAdmonition)
	tableOK := c.Flavor.Recognizes(flavor.ConstructTable)

	var open *CodeBlockFact
	inMath := false

	for ln := first; ln <= n; ln++ {
		lf := &c.Lines[ln-1]
		text := string(doc.LineText(ln))
		lineStart := doc.Lines[ln-1].Start

		lf.Indent = countLeadingWhitespace(text)
		lf.Blank = lf.Indent == len(text)

		// Open fence bodies swallow every classification until closed.
		if open != nil {
			if closesFence(text, open) {
				lf.FenceClose = true
				open.EndLine = ln
				open.Terminated = true
				c.CodeBlocks = append(c.CodeBlocks, *open)
				open = nil
			} else {
				lf.InCode = true
			}
			continue
		}

		if inMath {
			if isMathFence(text) {
				lf.MathFence = true
				inMath = false
			} else {
				lf.InMath = true
			}
			continue
		}

		if fb, ok := parseFenceOpen(text, lineStart, ln); ok {
			lf.FenceOpen = true
			open = fb
			continue
		}

		if mathOK && isMathFence(text) {
			lf.MathFence = true
			inMath = true
			continue
		}

		if lf.Blank {
			continue
		}

		// Blockquote markers prefix whatever else the line is.
		depth, markerEnd := stripBlockquote(text)
		lf.BlockquoteDepth = depth
		contentIdx := markerEnd
		if depth > 0 {
			lf.BlockquoteEnd = lineStart + markerEnd
			if contentIdx < len(text) && text[contentIdx] == ' ' {
				contentIdx++
			}
		}
		rest := text[contentIdx:]
		restStart := lineStart + contentIdx

		if isLineBlank(rest) {
			// A bare ">" line: structurally blank inside the quote.
			continue
		}

		if level, markerOff, spaced, ok := parseATXHeading(rest); ok {
			lf.HeadingLevel = level
			lf.HeadingMarkerEnd = restStart + markerOff
			lf.HeadingSpaced = spaced
			c.headingLines = append(c.headingLines, ln)
			continue
		}

		if admonOK && isAdmonitionMarker(rest) {
			lf.Admonition = true
			continue
		}

		if marker, ok := parseSetextUnderline(rest); ok && ln > first &&
			c.isTextFacts(ln-1, depth) {
			lf.SetextUnderline = marker
			c.headingLines = append(c.headingLines, ln-1)
			continue
		}

		if hr, ok := parseThematicBreak(rest); ok {
			lf.ThematicBreak = true
			lf.HRText = hr
			continue
		}

		if item, ok := parseListItem(rest, restStart); ok {
			lf.List = item
			c.listLines = append(c.listLines, ln)
			continue
		}

		if tableOK && strings.ContainsRune(rest, '|') {
			cols, sep := classifyTableRow(rest)
			if cols > 0 {
				lf.TableRow = true
				lf.TableSep = sep
				lf.TableCols = cols
				continue
			}
		}

		// Indented code: four-plus spaces at top level, opened only at a
		// paragraph boundary and never as a list continuation.
		if depth == 0 && lf.Indent >= 4 && c.startsIndentedCode(ln) {
			lf.IndentedCode = true
			lf.InCode = true
			c.hasIndentedCode = true
		}
	}

	// An unterminated fence degrades to a block running to EOF.
	if open != nil {
		open.EndLine = n
		c.CodeBlocks = append(c.CodeBlocks, *open)
	}

	c.groupIndentedBlocks()

	sort.Slice(c.CodeBlocks, func(i, j int) bool {
		return c.CodeBlocks[i].StartLine < c.CodeBlocks[j].StartLine
	})
}

// scanFrontMatter recognizes a leading "---" document header and returns
// the first line after it (1 when absent).
func (c *Cache) scanFrontMatter() int {
	doc := c.Doc
	if doc.LineCount() < 2 || string(doc.LineText(1)) != "---" {
		return 1
	}
	for ln := 2; ln <= doc.LineCount(); ln++ {
		text := string(doc.LineText(ln))
		if text == "---" || text == "..." {
			for i := 0; i < ln; i++ {
				c.Lines[i].FrontMatter = true
			}
			c.FrontMatter = mdtext.NewSpan(0, doc.Lines[ln-1].End)
			return ln + 1
		}
	}
	// No closing delimiter: not front matter.
	return 1
}

// isTextFacts reports whether an already-scanned line is plain paragraph
// text at the given blockquote depth, for setext underline attachment.
func (c *Cache) isTextFacts(n, depth int) bool {
	lf := c.Line(n)
	return !lf.Blank && !lf.FrontMatter && !lf.InCode && !lf.FenceOpen && !lf.FenceClose &&
		lf.HeadingLevel == 0 && lf.SetextUnderline == 0 && lf.List == nil &&
		!lf.ThematicBreak && !lf.TableRow && !lf.Admonition &&
		!lf.MathFence && !lf.InMath && lf.BlockquoteDepth == depth
}

// startsIndentedCode checks the document position allows opening or
// continuing an indented code block at the given line.
func (c *Cache) startsIndentedCode(ln int) bool {
	if ln == 1 {
		return true
	}
	prev := c.Line(ln - 1)
	if prev.IndentedCode {
		return true
	}
	if !prev.Blank {
		return false
	}
	// Walk back past blanks; an indented line after a list item is a
	// continuation, not code.
	for i := ln - 1; i >= 1; i-- {
		lf := c.Line(i)
		if lf.Blank {
			continue
		}
		if lf.IndentedCode {
			return true
		}
		return lf.List == nil
	}
	return true
}

// groupIndentedBlocks folds consecutive indented-code lines into code
// block facts.
func (c *Cache) groupIndentedBlocks() {
	start := 0
	for i := 1; i <= len(c.Lines)+1; i++ {
		inRun := i <= len(c.Lines) && c.Lines[i-1].IndentedCode
		switch {
		case inRun && start == 0:
			start = i
		case !inRun && start != 0:
			c.CodeBlocks = append(c.CodeBlocks, CodeBlockFact{
				StartLine:  start,
				EndLine:    i - 1,
				Terminated: true,
				Fenced:     false,
				Admonition: c.precededByAdmonition(start),
			})
			start = 0
		}
	}
}

// precededByAdmonition reports whether the nearest non-blank line above
// is an admonition marker, making the indented run its body.
func (c *Cache) precededByAdmonition(ln int) bool {
	for i := ln - 1; i >= 1; i-- {
		lf := c.Line(i)
		if lf.Blank {
			continue
		}
		return lf.Admonition
	}
	return false
}

// Line-level parsers. All of them degrade to a negative result on any
// shape they do not understand.

func countLeadingWhitespace(text string) int {
	i := 0
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

func isLineBlank(text string) bool {
	return countLeadingWhitespace(text) == len(text)
}

// stripBlockquote returns the marker depth and the index just past the
// last '>' marker. Markers may be separated by single spaces.
func stripBlockquote(text string) (depth, markerEnd int) {
	i := 0
	for i < len(text) && text[i] == ' ' && i < 3 {
		i++
	}
	for i < len(text) && text[i] == '>' {
		depth++
		markerEnd = i + 1
		i++
		if i < len(text) && text[i] == ' ' && i+1 < len(text) && text[i+1] == '>' {
			i++
		}
	}
	return depth, markerEnd
}

// parseATXHeading recognizes a 1-6 '#' marker run at up to three spaces
// of indent. Runs not followed by whitespace still classify (spaced is
// false) so spacing rules can flag them.
func parseATXHeading(text string) (level, markerEnd int, spaced, ok bool) {
	i := 0
	for i < len(text) && text[i] == ' ' && i < 3 {
		i++
	}
	start := i
	for i < len(text) && text[i] == '#' {
		i++
	}
	level = i - start
	if level < 1 || level > 6 {
		return 0, 0, false, false
	}
	spaced = i == len(text) || text[i] == ' ' || text[i] == '\t'
	return level, i, spaced, true
}

// parseSetextUnderline recognizes a line of all '=' or all '-'.
func parseSetextUnderline(text string) (byte, bool) {
	trimmed := strings.TrimRight(strings.TrimLeft(text, " "), " \t")
	if trimmed == "" {
		return 0, false
	}
	marker := trimmed[0]
	if marker != '=' && marker != '-' {
		return 0, false
	}
	for i := 1; i < len(trimmed); i++ {
		if trimmed[i] != marker {
			return 0, false
		}
	}
	return marker, true
}

// parseThematicBreak recognizes three or more of '*', '-', or '_',
// optionally space-separated, and nothing else.
func parseThematicBreak(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return "", false
	}
	marker := trimmed[0]
	if marker != '*' && marker != '-' && marker != '_' {
		return "", false
	}
	count := 0
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case marker:
			count++
		case ' ', '\t':
		default:
			return "", false
		}
	}
	if count < 3 {
		return "", false
	}
	return trimmed, true
}

// parseListItem recognizes a bullet or ordered list marker. base is the
// absolute byte offset of text's first byte.
func parseListItem(text string, base int) (*ListItemFact, bool) {
	ind := 0
	for ind < len(text) && text[ind] == ' ' {
		ind++
	}
	if ind >= len(text) {
		return nil, false
	}

	ch := text[ind]
	if ch == '-' || ch == '+' || ch == '*' {
		after := ind + 1
		if after < len(text) && text[after] != ' ' && text[after] != '\t' {
			return nil, false
		}
		return &ListItemFact{
			Ordered:      false,
			Marker:       ch,
			Number:       -1,
			MarkerStart:  base + ind,
			MarkerEnd:    base + after,
			ContentStart: base + contentAfter(text, after),
			Indent:       ind,
		}, true
	}

	if ch >= '0' && ch <= '9' {
		j := ind
		num := 0
		for j < len(text) && text[j] >= '0' && text[j] <= '9' && j-ind < 9 {
			num = num*10 + int(text[j]-'0')
			j++
		}
		if j >= len(text) || (text[j] != '.' && text[j] != ')') {
			return nil, false
		}
		delim := text[j]
		after := j + 1
		if after < len(text) && text[after] != ' ' && text[after] != '\t' {
			return nil, false
		}
		return &ListItemFact{
			Ordered:      true,
			Marker:       delim,
			Number:       num,
			MarkerStart:  base + ind,
			MarkerEnd:    base + after,
			ContentStart: base + contentAfter(text, after),
			Indent:       ind,
		}, true
	}

	return nil, false
}

func contentAfter(text string, idx int) int {
	for idx < len(text) && (text[idx] == ' ' || text[idx] == '\t') {
		idx++
	}
	return idx
}

// parseFenceOpen recognizes a backtick or tilde fence of length >= 3.
func parseFenceOpen(text string, lineStart, ln int) (*CodeBlockFact, bool) {
	i := 0
	for i < len(text) && text[i] == ' ' && i < 3 {
		i++
	}
	if i >= len(text) {
		return nil, false
	}
	marker := text[i]
	if marker != '`' && marker != '~' {
		return nil, false
	}
	runStart := i
	for i < len(text) && text[i] == marker {
		i++
	}
	if i-runStart < 3 {
		return nil, false
	}

	rawInfo := text[i:]
	// CommonMark: a backtick fence's info string may not contain backticks.
	if marker == '`' && strings.ContainsRune(rawInfo, '`') {
		return nil, false
	}

	info := strings.TrimSpace(rawInfo)
	infoSpan := mdtext.NewSpan(lineStart+i, lineStart+i)
	if info != "" {
		rel := strings.Index(rawInfo, info)
		infoSpan = mdtext.NewSpan(lineStart+i+rel, lineStart+i+rel+len(info))
	}

	return &CodeBlockFact{
		StartLine: ln,
		EndLine:   ln,
		Fenced:    true,
		Marker:    marker,
		FenceLen:  i - runStart,
		Info:      info,
		InfoSpan:  infoSpan,
	}, true
}

// closesFence recognizes the closing line for an open fence: a run of
// the same marker at least as long, and nothing else.
func closesFence(text string, open *CodeBlockFact) bool {
	i := 0
	for i < len(text) && text[i] == ' ' && i < 3 {
		i++
	}
	run := 0
	for i < len(text) && text[i] == open.Marker {
		run++
		i++
	}
	if run < open.FenceLen {
		return false
	}
	return isLineBlank(text[i:])
}

func isMathFence(text string) bool {
	return strings.TrimSpace(text) == "$$"
}

func isAdmonitionMarker(text string) bool {
	trimmed := strings.TrimLeft(text, " ")
	return strings.HasPrefix(trimmed, "!!! ") || strings.HasPrefix(trimmed, "??? ") ||
		trimmed == "!!!" || trimmed == "???"
}

// classifyTableRow counts pipe-separated cells and reports whether the
// row is a separator (only '-', ':', spaces between pipes).
func classifyTableRow(text string) (cols int, sep bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.ContainsRune(trimmed, '|') {
		return 0, false
	}

	cells := splitTableCells(trimmed)
	if len(cells) == 0 {
		return 0, false
	}

	sep = true
	for _, cell := range cells {
		if !isSeparatorCell(cell) {
			sep = false
			break
		}
	}
	return len(cells), sep
}

// splitTableCells splits on unescaped pipes, dropping the outer edge
// delimiters when present.
func splitTableCells(row string) []string {
	var cells []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(row); i++ {
		ch := row[i]
		switch {
		case escaped:
			cur.WriteByte(ch)
			escaped = false
		case ch == '\\':
			cur.WriteByte(ch)
			escaped = true
		case ch == '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	cells = append(cells, cur.String())

	// Leading and trailing delimiters produce empty edge cells.
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" && strings.HasPrefix(row, "|") {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" && strings.HasSuffix(row, "|") {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func isSeparatorCell(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return false
	}
	dashes := 0
	for i := 0; i < len(trimmed); i++ {
		switch trimmed[i] {
		case '-':
			dashes++
		case ':':
		default:
			return false
		}
	}
	return dashes > 0
}
