package mdtext

// TokenKind classifies a token span produced by the tokenizer adapter.
type TokenKind uint8

// Token kinds cover the block and inline constructs the fact cache
// consumes. Unlike a lexer token stream, these spans may be sparse: the
// adapter omits a construct it cannot place precisely, and the fact
// cache's own line scanner remains the conservative fallback.
const (
	TokenParagraph TokenKind = iota
	TokenHeading
	TokenCodeBlock
	TokenIndentedCode
	TokenListItem
	TokenBlockquote
	TokenThematicBreak
	TokenHTMLBlock

	TokenEmphasis
	TokenStrong
	TokenCodeSpan
	TokenLink
	TokenImage
	TokenHTMLInline
)

// Token is one classified span of the source document.
type Token struct {
	// Kind identifies the construct this span represents.
	Kind TokenKind

	// Span is the full extent of the construct, markers included where
	// the adapter could determine them.
	Span Span

	// Inner is the content extent inside any markers (emphasis text,
	// code span text, link text). Zero for block tokens.
	Inner Span

	// Level is the heading level or emphasis marker count.
	Level int

	// Info carries construct metadata: fence info string, link
	// destination, or list marker text.
	Info string

	// Ordered is true for ordered list items.
	Ordered bool
}

// IsBlock returns true for block-level token kinds.
func (t Token) IsBlock() bool {
	switch t.Kind {
	case TokenParagraph, TokenHeading, TokenCodeBlock, TokenIndentedCode,
		TokenListItem, TokenBlockquote, TokenThematicBreak, TokenHTMLBlock:
		return true
	default:
		return false
	}
}
