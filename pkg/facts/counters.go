package facts

// Counters holds single-pass counts of structurally significant
// characters. The counts back the early-exit presence predicates: a zero
// count guarantees the construct is absent, which is the sound direction
// for skipping rule evaluation. Non-zero counts prove nothing and only
// cost a wasted scan.
type Counters struct {
	Hash       int // '#'  headings
	Asterisk   int // '*'  emphasis, lists, thematic breaks
	Underscore int // '_'  emphasis, thematic breaks
	Hyphen     int // '-'  lists, thematic breaks, setext underlines
	Plus       int // '+'  lists
	Gt         int // '>'  blockquotes
	Pipe       int // '|'  tables
	Bracket    int // '['  links, images, reference definitions
	Backtick   int // '`'  code spans, fences
	Tilde      int // '~'  fences, strikethrough
	Lt         int // '<'  HTML, autolinks
	Bang       int // '!'  images, admonitions
	Equals     int // '='  setext underlines
	Dollar     int // '$'  math blocks
	Tab        int // '\t' hard tabs
	Digit      int // 0-9  ordered list markers
	Newline    int // '\n'
}

// CountChars computes character counts for content in one pass.
func CountChars(content []byte) Counters {
	var c Counters
	for _, ch := range content {
		switch ch {
		case '#':
			c.Hash++
		case '*':
			c.Asterisk++
		case '_':
			c.Underscore++
		case '-':
			c.Hyphen++
		case '+':
			c.Plus++
		case '>':
			c.Gt++
		case '|':
			c.Pipe++
		case '[':
			c.Bracket++
		case '`':
			c.Backtick++
		case '~':
			c.Tilde++
		case '<':
			c.Lt++
		case '!':
			c.Bang++
		case '=':
			c.Equals++
		case '$':
			c.Dollar++
		case '\t':
			c.Tab++
		case '\n':
			c.Newline++
		default:
			if ch >= '0' && ch <= '9' {
				c.Digit++
			}
		}
	}
	return c
}
