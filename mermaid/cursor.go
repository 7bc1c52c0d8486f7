package mermaid

import "strings"

// cursor walks a materialized token slice. Both grammars consume the same
// token sequence type; each parser owns its own cursor. Backtracking is an
// integer snapshot/restore, tokens are never mutated.
type cursor struct {
	toks []Token
	pos  int
}

func newCursor(toks []Token) *cursor {
	return &cursor{toks: toks}
}

// peek returns the upcoming token without consuming it. The slice always
// ends with TokenEOF, so peeking past the end returns EOF.
func (c *cursor) peek() Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[c.pos]
}

// next consumes and returns the upcoming token. The EOF token is sticky.
func (c *cursor) next() Token {
	tok := c.peek()
	if tok.Kind != TokenEOF {
		c.pos++
	}
	return tok
}

// prev returns the most recently consumed token.
func (c *cursor) prev() Token {
	if c.pos == 0 {
		return c.peek()
	}
	return c.toks[c.pos-1]
}

func (c *cursor) atEnd() bool {
	return c.peek().Kind == TokenEOF
}

// save snapshots the cursor position for O(1) rollback.
func (c *cursor) save() int { return c.pos }

// restore rewinds to a previously saved position.
func (c *cursor) restore(pos int) { c.pos = pos }

// skipTrivia consumes newline, semicolon, and comment tokens.
func (c *cursor) skipTrivia() {
	for {
		switch c.peek().Kind {
		case TokenNewline, TokenSemicolon, TokenComment:
			c.next()
		default:
			return
		}
	}
}

// discardLine consumes everything through the end of the current statement,
// leaving the cursor just past the newline (or at EOF).
func (c *cursor) discardLine() {
	for !c.atEnd() {
		if c.next().Kind == TokenNewline {
			return
		}
	}
}

// synchronize discards tokens after a failed statement until the previous
// token was a newline or the upcoming token is one of the grammar's
// statement-starting keywords. It always advances or reaches EOF.
func (c *cursor) synchronize(keywords ...TokenKind) {
	for !c.atEnd() {
		if c.prev().Kind == TokenNewline {
			return
		}
		kind := c.peek().Kind
		for _, kw := range keywords {
			if kind == kw {
				return
			}
		}
		c.next()
	}
}

// textBuilder accumulates human-readable text from interior tokens with a
// minimal space-insertion heuristic: no space before trailing punctuation,
// no space immediately after an opening bracket lexeme.
type textBuilder struct {
	sb       strings.Builder
	lastOpen bool
}

// noSpaceBefore holds lexemes that attach to the preceding word.
var noSpaceBefore = map[string]bool{
	"?": true, "!": true, ",": true, ":": true, ";": true, "%": true,
}

// openerLexemes holds lexemes after which no space is inserted.
var openerLexemes = map[string]bool{
	"(": true, "[": true, "{": true, "((": true, "([": true, "[[": true,
	"{{": true, "(((": true, "[/": true, `[\`: true,
}

func (b *textBuilder) write(lexeme string) {
	if lexeme == "" {
		return
	}
	if b.sb.Len() > 0 && !b.lastOpen && !noSpaceBefore[lexeme] {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(lexeme)
	b.lastOpen = openerLexemes[lexeme]
}

func (b *textBuilder) String() string {
	return b.sb.String()
}
