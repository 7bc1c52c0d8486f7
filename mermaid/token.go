package mermaid

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline    // physical line break
	TokenComment    // %% to end of line
	TokenUnknown    // any character the lexer has no rule for
	TokenIdentifier // [A-Za-z0-9_]+ not matching a keyword
	TokenString     // "..." double-quoted literal

	// Keywords (identifier text checked against keyword map)
	TokenFlowchart    // flowchart
	TokenGraph        // graph
	TokenSubgraph     // subgraph
	TokenEnd          // end
	TokenStyle        // style
	TokenClassDef     // classDef
	TokenDirection    // direction
	TokenClassDiagram // classDiagram
	TokenClass        // class
	TokenTitle        // title

	// Direction keywords. TD and TB both lex as TokenDirTD.
	TokenDirTD // TD, TB
	TokenDirBT // BT
	TokenDirLR // LR
	TokenDirRL // RL

	// Shape delimiters (eleven pairs; the asymmetric shape closes with ']')
	TokenLSquare        // [
	TokenRSquare        // ]
	TokenLRound         // (
	TokenRRound         // )
	TokenLStadium       // ([
	TokenRStadium       // ])
	TokenLSubroutine    // [[
	TokenRSubroutine    // ]]
	TokenLBrace         // {
	TokenRBrace         // }
	TokenLHexagon       // {{
	TokenRHexagon       // }}
	TokenLCircle        // ((
	TokenRCircle        // ))
	TokenLDoubleCircle  // (((
	TokenRDoubleCircle  // )))
	TokenAsymmetric     // >
	TokenLParallelogram // [/
	TokenRParallelogram // /]
	TokenLTrapezoid     // [\
	TokenRTrapezoid     // \]

	// Flowchart arrows and lines (fourteen variants). Longer dash/dot/equals
	// runs lex as the same kind with the full run kept in the lexeme.
	TokenArrowSolid        // -->
	TokenArrowSolidCircle  // --o
	TokenArrowSolidCross   // --x
	TokenLineSolid         // ---
	TokenArrowThin         // ->
	TokenArrowDotted       // -.->
	TokenArrowDottedCircle // -.-o
	TokenArrowDottedCross  // -.-x
	TokenLineDotted        // -.-
	TokenArrowThick        // ==>
	TokenArrowThickCircle  // ==o
	TokenArrowThickCross   // ==x
	TokenLineThick         // ===
	TokenLineInvisible     // ~~~

	// Class-diagram relation arrows, lexed as single compound tokens.
	TokenRelInheritL  // <|--
	TokenRelInheritR  // --|>
	TokenRelRealizeL  // <|..
	TokenRelRealizeR  // ..|>
	TokenRelDependL   // <..
	TokenRelDependR   // ..>
	TokenRelCompose   // *-- or --*
	TokenRelAggregate // o--
	TokenLineDots     // ..

	// Punctuation
	TokenPipe      // |
	TokenColon     // :
	TokenSemicolon // ;
	TokenComma     // ,
	TokenPlus      // +
	TokenMinus     // -
	TokenHash      // #
	TokenTilde     // ~
	TokenStar      // *
	TokenPercent   // %
)

var tokenNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenNewline:           "newline",
	TokenComment:           "comment",
	TokenUnknown:           "unknown",
	TokenIdentifier:        "identifier",
	TokenString:            "string",
	TokenFlowchart:         "'flowchart'",
	TokenGraph:             "'graph'",
	TokenSubgraph:          "'subgraph'",
	TokenEnd:               "'end'",
	TokenStyle:             "'style'",
	TokenClassDef:          "'classDef'",
	TokenDirection:         "'direction'",
	TokenClassDiagram:      "'classDiagram'",
	TokenClass:             "'class'",
	TokenTitle:             "'title'",
	TokenDirTD:             "'TD'",
	TokenDirBT:             "'BT'",
	TokenDirLR:             "'LR'",
	TokenDirRL:             "'RL'",
	TokenLSquare:           "'['",
	TokenRSquare:           "']'",
	TokenLRound:            "'('",
	TokenRRound:            "')'",
	TokenLStadium:          "'(['",
	TokenRStadium:          "'])'",
	TokenLSubroutine:       "'[['",
	TokenRSubroutine:       "']]'",
	TokenLBrace:            "'{'",
	TokenRBrace:            "'}'",
	TokenLHexagon:          "'{{'",
	TokenRHexagon:          "'}}'",
	TokenLCircle:           "'(('",
	TokenRCircle:           "'))'",
	TokenLDoubleCircle:     "'((('",
	TokenRDoubleCircle:     "')))'",
	TokenAsymmetric:        "'>'",
	TokenLParallelogram:    "'[/'",
	TokenRParallelogram:    "'/]'",
	TokenLTrapezoid:        `'[\'`,
	TokenRTrapezoid:        `'\]'`,
	TokenArrowSolid:        "'-->'",
	TokenArrowSolidCircle:  "'--o'",
	TokenArrowSolidCross:   "'--x'",
	TokenLineSolid:         "'---'",
	TokenArrowThin:         "'->'",
	TokenArrowDotted:       "'-.->'",
	TokenArrowDottedCircle: "'-.-o'",
	TokenArrowDottedCross:  "'-.-x'",
	TokenLineDotted:        "'-.-'",
	TokenArrowThick:        "'==>'",
	TokenArrowThickCircle:  "'==o'",
	TokenArrowThickCross:   "'==x'",
	TokenLineThick:         "'==='",
	TokenLineInvisible:     "'~~~'",
	TokenRelInheritL:       "'<|--'",
	TokenRelInheritR:       "'--|>'",
	TokenRelRealizeL:       "'<|..'",
	TokenRelRealizeR:       "'..|>'",
	TokenRelDependL:        "'<..'",
	TokenRelDependR:        "'..>'",
	TokenRelCompose:        "'*--'",
	TokenRelAggregate:      "'o--'",
	TokenLineDots:          "'..'",
	TokenPipe:              "'|'",
	TokenColon:             "':'",
	TokenSemicolon:         "';'",
	TokenComma:             "','",
	TokenPlus:              "'+'",
	TokenMinus:             "'-'",
	TokenHash:              "'#'",
	TokenTilde:             "'~'",
	TokenStar:              "'*'",
	TokenPercent:           "'%'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind   TokenKind
	Lexeme string // text content (decoded for strings, raw for others)
	Line   int    // 1-based line number
	Column int    // 1-based column number
}

// keywords maps keyword strings to their token kinds. Lookup is
// case-sensitive; Mermaid keywords are fixed-case.
var keywords = map[string]TokenKind{
	"flowchart":    TokenFlowchart,
	"graph":        TokenGraph,
	"subgraph":     TokenSubgraph,
	"end":          TokenEnd,
	"style":        TokenStyle,
	"classDef":     TokenClassDef,
	"direction":    TokenDirection,
	"classDiagram": TokenClassDiagram,
	"class":        TokenClass,
	"title":        TokenTitle,
	"TD":           TokenDirTD,
	"TB":           TokenDirTD,
	"BT":           TokenDirBT,
	"LR":           TokenDirLR,
	"RL":           TokenDirRL,
}

// isDirectionKind reports whether k is one of the four direction keywords.
func isDirectionKind(k TokenKind) bool {
	switch k {
	case TokenDirTD, TokenDirBT, TokenDirLR, TokenDirRL:
		return true
	}
	return false
}

// isShapeOpener reports whether k opens one of the eleven node shapes.
func isShapeOpener(k TokenKind) bool {
	switch k {
	case TokenLSquare, TokenLRound, TokenLStadium, TokenLSubroutine,
		TokenLBrace, TokenLHexagon, TokenLCircle, TokenLDoubleCircle,
		TokenAsymmetric, TokenLParallelogram, TokenLTrapezoid:
		return true
	}
	return false
}

// isArrowKind reports whether k is one of the fourteen flowchart arrow or
// line variants.
func isArrowKind(k TokenKind) bool {
	switch k {
	case TokenArrowSolid, TokenArrowSolidCircle, TokenArrowSolidCross,
		TokenLineSolid, TokenArrowThin,
		TokenArrowDotted, TokenArrowDottedCircle, TokenArrowDottedCross,
		TokenLineDotted,
		TokenArrowThick, TokenArrowThickCircle, TokenArrowThickCross,
		TokenLineThick, TokenLineInvisible:
		return true
	}
	return false
}

// isRelationKind reports whether k can begin a class-diagram relation.
func isRelationKind(k TokenKind) bool {
	switch k {
	case TokenRelInheritL, TokenRelInheritR, TokenRelRealizeL, TokenRelRealizeR,
		TokenRelDependL, TokenRelDependR, TokenRelCompose, TokenRelAggregate,
		TokenLineDots, TokenLineSolid, TokenLineDotted,
		TokenArrowSolid, TokenArrowDotted, TokenArrowSolidCircle:
		return true
	}
	return false
}
