package mermaid

import "strings"

// Lexer tokenizes Mermaid source text into a materialized token slice.
// Lexing is total: there is no error path. Characters with no lexical rule
// become TokenUnknown tokens that the parsers skip or fold into node text.
type Lexer struct {
	src  []byte
	pos  int // current byte offset
	line int // current line (1-based)
	col  int // current column (1-based)
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// ScanAll lexes the entire source in a single forward pass and returns the
// token sequence. The last token is always, and only, TokenEOF.
func ScanAll(src []byte) []Token {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.scan()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}
		return
	}
}

func (l *Lexer) token(kind TokenKind, lexeme string, line, col int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: col}
}

func (l *Lexer) scan() Token {
	l.skipWhitespace()

	line, col := l.line, l.col

	if l.atEnd() {
		return l.token(TokenEOF, "", line, col)
	}

	ch := l.peek()

	switch ch {
	case '\n':
		l.advance()
		return l.token(TokenNewline, "\n", line, col)
	case '%':
		if l.peekAt(1) == '%' {
			return l.scanComment()
		}
		l.advance()
		return l.token(TokenPercent, "%", line, col)
	case '"':
		return l.scanString()
	case '[':
		switch l.peekAt(1) {
		case '[':
			l.advance()
			l.advance()
			return l.token(TokenLSubroutine, "[[", line, col)
		case '/':
			l.advance()
			l.advance()
			return l.token(TokenLParallelogram, "[/", line, col)
		case '\\':
			l.advance()
			l.advance()
			return l.token(TokenLTrapezoid, `[\`, line, col)
		}
		l.advance()
		return l.token(TokenLSquare, "[", line, col)
	case ']':
		switch l.peekAt(1) {
		case ']':
			l.advance()
			l.advance()
			return l.token(TokenRSubroutine, "]]", line, col)
		case ')':
			l.advance()
			l.advance()
			return l.token(TokenRStadium, "])", line, col)
		}
		l.advance()
		return l.token(TokenRSquare, "]", line, col)
	case '(':
		if l.peekAt(1) == '(' && l.peekAt(2) == '(' {
			l.advance()
			l.advance()
			l.advance()
			return l.token(TokenLDoubleCircle, "(((", line, col)
		}
		if l.peekAt(1) == '(' {
			l.advance()
			l.advance()
			return l.token(TokenLCircle, "((", line, col)
		}
		if l.peekAt(1) == '[' {
			l.advance()
			l.advance()
			return l.token(TokenLStadium, "([", line, col)
		}
		l.advance()
		return l.token(TokenLRound, "(", line, col)
	case ')':
		if l.peekAt(1) == ')' && l.peekAt(2) == ')' {
			l.advance()
			l.advance()
			l.advance()
			return l.token(TokenRDoubleCircle, ")))", line, col)
		}
		if l.peekAt(1) == ')' {
			l.advance()
			l.advance()
			return l.token(TokenRCircle, "))", line, col)
		}
		l.advance()
		return l.token(TokenRRound, ")", line, col)
	case '{':
		if l.peekAt(1) == '{' {
			l.advance()
			l.advance()
			return l.token(TokenLHexagon, "{{", line, col)
		}
		l.advance()
		return l.token(TokenLBrace, "{", line, col)
	case '}':
		if l.peekAt(1) == '}' {
			l.advance()
			l.advance()
			return l.token(TokenRHexagon, "}}", line, col)
		}
		l.advance()
		return l.token(TokenRBrace, "}", line, col)
	case '/':
		if l.peekAt(1) == ']' {
			l.advance()
			l.advance()
			return l.token(TokenRParallelogram, "/]", line, col)
		}
		l.advance()
		return l.token(TokenUnknown, "/", line, col)
	case '\\':
		if l.peekAt(1) == ']' {
			l.advance()
			l.advance()
			return l.token(TokenRTrapezoid, `\]`, line, col)
		}
		l.advance()
		return l.token(TokenUnknown, `\`, line, col)
	case '>':
		l.advance()
		return l.token(TokenAsymmetric, ">", line, col)
	case '-':
		return l.scanDash(line, col)
	case '=':
		return l.scanEquals(line, col)
	case '~':
		return l.scanTilde(line, col)
	case '.':
		return l.scanDots(line, col)
	case '<':
		return l.scanLessThan(line, col)
	case '*':
		if l.peekAt(1) == '-' && l.peekAt(2) == '-' {
			start := l.pos
			l.advance() // *
			for l.peek() == '-' {
				l.advance()
			}
			return l.token(TokenRelCompose, string(l.src[start:l.pos]), line, col)
		}
		l.advance()
		return l.token(TokenStar, "*", line, col)
	case '|':
		l.advance()
		return l.token(TokenPipe, "|", line, col)
	case ':':
		l.advance()
		return l.token(TokenColon, ":", line, col)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, ";", line, col)
	case ',':
		l.advance()
		return l.token(TokenComma, ",", line, col)
	case '+':
		l.advance()
		return l.token(TokenPlus, "+", line, col)
	case '#':
		l.advance()
		return l.token(TokenHash, "#", line, col)
	}

	// 'o' glued to a dash run is the aggregation glyph, unless the run ends
	// in an arrowhead character: 'o-->' is the node id 'o' followed by a
	// solid arrow, not aggregation.
	if ch == 'o' && l.peekAt(1) == '-' && l.peekAt(2) == '-' {
		j := 1
		for l.peekAt(j) == '-' {
			j++
		}
		if c := l.peekAt(j); c != '>' && c != 'o' && c != 'x' {
			start := l.pos
			l.advance() // o
			for l.peek() == '-' {
				l.advance()
			}
			return l.token(TokenRelAggregate, string(l.src[start:l.pos]), line, col)
		}
	}

	if isWordChar(ch) {
		return l.scanWord(line, col)
	}

	l.advance()
	return l.token(TokenUnknown, string(ch), line, col)
}

// scanComment consumes '%%' through the end of the physical line. The
// newline itself is left for the next scan so statement boundaries survive.
func (l *Lexer) scanComment() Token {
	line, col := l.line, l.col
	start := l.pos
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, string(l.src[start:l.pos]), line, col)
}

// scanString consumes a double-quoted literal. An unterminated string runs
// to the end of the line; lexing never fails.
func (l *Lexer) scanString() Token {
	line, col := l.line, l.col
	l.advance() // consume opening "

	var sb strings.Builder
	for !l.atEnd() && l.peek() != '\n' {
		ch := l.advance()
		if ch == '"' {
			return l.token(TokenString, sb.String(), line, col)
		}
		sb.WriteByte(ch)
	}
	return l.token(TokenString, sb.String(), line, col)
}

// scanDash handles every lexeme starting with '-': the solid and dotted
// arrow families, the '--|>' and '--*' relation glyphs, and the bare minus
// used as a visibility marker in class bodies.
func (l *Lexer) scanDash(line, col int) Token {
	start := l.pos
	dashes := 0
	for l.peek() == '-' {
		l.advance()
		dashes++
	}

	// Dotted family: -.  -.-  -.->  -.-o  -.-x
	if l.peek() == '.' {
		for l.peek() == '.' {
			l.advance()
		}
		for l.peek() == '-' {
			l.advance()
		}
		kind := TokenLineDotted
		switch {
		case l.peek() == '>':
			l.advance()
			kind = TokenArrowDotted
		case l.peek() == 'o' && !isWordChar(l.peekAt(1)):
			l.advance()
			kind = TokenArrowDottedCircle
		case l.peek() == 'x' && !isWordChar(l.peekAt(1)):
			l.advance()
			kind = TokenArrowDottedCross
		}
		return l.token(kind, string(l.src[start:l.pos]), line, col)
	}

	if dashes >= 2 {
		// Relation glyphs --|> and --*
		if l.peek() == '|' && l.peekAt(1) == '>' {
			l.advance()
			l.advance()
			return l.token(TokenRelInheritR, string(l.src[start:l.pos]), line, col)
		}
		if l.peek() == '*' {
			l.advance()
			return l.token(TokenRelCompose, string(l.src[start:l.pos]), line, col)
		}
		switch {
		case l.peek() == '>':
			l.advance()
			return l.token(TokenArrowSolid, string(l.src[start:l.pos]), line, col)
		case l.peek() == 'o' && !isWordChar(l.peekAt(1)):
			l.advance()
			return l.token(TokenArrowSolidCircle, string(l.src[start:l.pos]), line, col)
		case l.peek() == 'x' && !isWordChar(l.peekAt(1)):
			l.advance()
			return l.token(TokenArrowSolidCross, string(l.src[start:l.pos]), line, col)
		}
		return l.token(TokenLineSolid, string(l.src[start:l.pos]), line, col)
	}

	// Single dash: thin open arrow or bare minus.
	if l.peek() == '>' {
		l.advance()
		return l.token(TokenArrowThin, "->", line, col)
	}
	return l.token(TokenMinus, "-", line, col)
}

// scanEquals handles the thick arrow family: ==>  ==o  ==x  ===
func (l *Lexer) scanEquals(line, col int) Token {
	start := l.pos
	equals := 0
	for l.peek() == '=' {
		l.advance()
		equals++
	}
	if equals >= 2 {
		switch {
		case l.peek() == '>':
			l.advance()
			return l.token(TokenArrowThick, string(l.src[start:l.pos]), line, col)
		case l.peek() == 'o' && !isWordChar(l.peekAt(1)):
			l.advance()
			return l.token(TokenArrowThickCircle, string(l.src[start:l.pos]), line, col)
		case l.peek() == 'x' && !isWordChar(l.peekAt(1)):
			l.advance()
			return l.token(TokenArrowThickCross, string(l.src[start:l.pos]), line, col)
		}
		return l.token(TokenLineThick, string(l.src[start:l.pos]), line, col)
	}
	return l.token(TokenUnknown, string(l.src[start:l.pos]), line, col)
}

// scanTilde distinguishes the invisible link '~~~' from the single tilde
// used for package visibility and generic type markers.
func (l *Lexer) scanTilde(line, col int) Token {
	start := l.pos
	tildes := 0
	for l.peek() == '~' {
		l.advance()
		tildes++
	}
	if tildes >= 3 {
		return l.token(TokenLineInvisible, string(l.src[start:l.pos]), line, col)
	}
	if tildes == 1 {
		return l.token(TokenTilde, "~", line, col)
	}
	return l.token(TokenUnknown, string(l.src[start:l.pos]), line, col)
}

// scanDots handles the dotted relation glyphs: ..|>  ..>  ..
func (l *Lexer) scanDots(line, col int) Token {
	start := l.pos
	dots := 0
	for l.peek() == '.' {
		l.advance()
		dots++
	}
	if dots >= 2 {
		if l.peek() == '|' && l.peekAt(1) == '>' {
			l.advance()
			l.advance()
			return l.token(TokenRelRealizeR, string(l.src[start:l.pos]), line, col)
		}
		if l.peek() == '>' {
			l.advance()
			return l.token(TokenRelDependR, string(l.src[start:l.pos]), line, col)
		}
		return l.token(TokenLineDots, string(l.src[start:l.pos]), line, col)
	}
	return l.token(TokenUnknown, ".", line, col)
}

// scanLessThan handles the left-pointing relation glyphs: <|--  <|..  <..
func (l *Lexer) scanLessThan(line, col int) Token {
	start := l.pos
	l.advance() // consume '<'

	if l.peek() == '|' {
		switch l.peekAt(1) {
		case '-':
			l.advance()
			for l.peek() == '-' {
				l.advance()
			}
			return l.token(TokenRelInheritL, string(l.src[start:l.pos]), line, col)
		case '.':
			l.advance()
			for l.peek() == '.' {
				l.advance()
			}
			return l.token(TokenRelRealizeL, string(l.src[start:l.pos]), line, col)
		}
	}
	if l.peek() == '.' && l.peekAt(1) == '.' {
		for l.peek() == '.' {
			l.advance()
		}
		return l.token(TokenRelDependL, string(l.src[start:l.pos]), line, col)
	}
	return l.token(TokenUnknown, "<", line, col)
}

func (l *Lexer) scanWord(line, col int) Token {
	start := l.pos
	for !l.atEnd() && isWordChar(l.peek()) {
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	if kind, ok := keywords[lexeme]; ok {
		return l.token(kind, lexeme, line, col)
	}
	return l.token(TokenIdentifier, lexeme, line, col)
}

func isWordChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '_'
}
