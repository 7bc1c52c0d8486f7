package mermaid

import "strings"

// ParseFlowchart parses Mermaid flowchart source and returns the model.
// It never returns an error: every failure is recorded in the model's
// Errors list and parsing resumes at the next statement boundary.
func ParseFlowchart(src []byte) *Flowchart {
	chart := newFlowchart()
	p := &flowchartParser{cursor: newCursor(ScanAll(src)), chart: chart}
	p.parse()
	return chart
}

type flowchartParser struct {
	*cursor
	chart *Flowchart
}

// flowchartSyncKinds are the statement-starting keywords recovery stops at.
var flowchartSyncKinds = []TokenKind{TokenSubgraph, TokenEnd, TokenStyle, TokenClassDef}

// arrowClass pairs a line style with an arrowhead.
type arrowClass struct {
	style LineStyle
	head  Arrowhead
}

// arrowTable classifies the fourteen flowchart arrow token kinds. Headless
// visible lines carry no arrowhead; the thin '->' form is the open variant;
// invisible lines always pair with no arrowhead.
var arrowTable = map[TokenKind]arrowClass{
	TokenArrowSolid:        {LineSolid, ArrowNormal},
	TokenArrowSolidCircle:  {LineSolid, ArrowCircle},
	TokenArrowSolidCross:   {LineSolid, ArrowCross},
	TokenLineSolid:         {LineSolid, ArrowNone},
	TokenArrowThin:         {LineSolid, ArrowOpen},
	TokenArrowDotted:       {LineDotted, ArrowNormal},
	TokenArrowDottedCircle: {LineDotted, ArrowCircle},
	TokenArrowDottedCross:  {LineDotted, ArrowCross},
	TokenLineDotted:        {LineDotted, ArrowNone},
	TokenArrowThick:        {LineThick, ArrowNormal},
	TokenArrowThickCircle:  {LineThick, ArrowCircle},
	TokenArrowThickCross:   {LineThick, ArrowCross},
	TokenLineThick:         {LineThick, ArrowNone},
	TokenLineInvisible:     {LineInvisible, ArrowNone},
}

// shapeDelims maps each shape-opening token to its shape and required closer.
var shapeDelims = map[TokenKind]struct {
	shape  Shape
	closer TokenKind
}{
	TokenLSquare:        {ShapeRectangle, TokenRSquare},
	TokenLRound:         {ShapeRounded, TokenRRound},
	TokenLStadium:       {ShapeStadium, TokenRStadium},
	TokenLSubroutine:    {ShapeSubroutine, TokenRSubroutine},
	TokenLBrace:         {ShapeRhombus, TokenRBrace},
	TokenLHexagon:       {ShapeHexagon, TokenRHexagon},
	TokenLCircle:        {ShapeCircle, TokenRCircle},
	TokenLDoubleCircle:  {ShapeDoubleCircle, TokenRDoubleCircle},
	TokenAsymmetric:     {ShapeAsymmetric, TokenRSquare},
	TokenLParallelogram: {ShapeParallelogram, TokenRParallelogram},
	TokenLTrapezoid:     {ShapeTrapezoid, TokenRTrapezoid},
}

func directionOf(kind TokenKind) Direction {
	switch kind {
	case TokenDirBT:
		return BottomUp
	case TokenDirLR:
		return LeftRight
	case TokenDirRL:
		return RightLeft
	default:
		return TopDown
	}
}

// minLength derives the rank span an arrow lexeme encodes: the minimal form
// spans one rank, each extra dash/dot/equals/tilde adds one.
func minLength(tok Token) int {
	var n int
	switch tok.Kind {
	case TokenArrowSolid, TokenArrowSolidCircle, TokenArrowSolidCross:
		n = strings.Count(tok.Lexeme, "-") - 1
	case TokenLineSolid:
		n = strings.Count(tok.Lexeme, "-") - 2
	case TokenArrowDotted, TokenArrowDottedCircle, TokenArrowDottedCross, TokenLineDotted:
		n = strings.Count(tok.Lexeme, ".")
	case TokenArrowThick, TokenArrowThickCircle, TokenArrowThickCross:
		n = strings.Count(tok.Lexeme, "=") - 1
	case TokenLineThick:
		n = strings.Count(tok.Lexeme, "=") - 2
	case TokenLineInvisible:
		n = strings.Count(tok.Lexeme, "~") - 2
	default:
		n = 1
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (p *flowchartParser) parse() {
	p.skipTrivia()

	head := p.peek()
	if head.Kind != TokenFlowchart && head.Kind != TokenGraph {
		p.chart.Errors = append(p.chart.Errors, headerError("expected 'flowchart' or 'graph' header"))
		return
	}
	p.next()

	if isDirectionKind(p.peek().Kind) {
		p.chart.Direction = directionOf(p.next().Kind)
	}

	for !p.atEnd() {
		if err := p.parseStatement(); err != nil {
			p.chart.Errors = append(p.chart.Errors, asParseError(err))
			p.synchronize(flowchartSyncKinds...)
		}
	}
}

// parseStatement dispatches on the lookahead token. Unexpected tokens are
// consumed and discarded so the parser never stalls.
func (p *flowchartParser) parseStatement() error {
	switch tok := p.peek(); tok.Kind {
	case TokenNewline, TokenSemicolon, TokenComment:
		p.next()
		return nil
	case TokenSubgraph:
		sg, err := p.parseSubgraph()
		if sg != nil {
			p.chart.Subgraphs = append(p.chart.Subgraphs, sg)
		}
		return err
	case TokenStyle:
		return p.parseStyle()
	case TokenClassDef:
		return p.parseClassDef()
	case TokenIdentifier:
		return p.parseNodeStatement()
	default:
		p.next()
		return nil
	}
}

// parseNodeStatement parses an identifier-led statement: a node definition
// or bare reference, optionally followed by an edge chain.
func (p *flowchartParser) parseNodeStatement() error {
	id := p.next()
	if err := p.parseNodeDefinition(id); err != nil {
		return err
	}
	return p.parseEdgeChain(id.Lexeme)
}

// parseNodeDefinition parses the optional shape after a node identifier.
// With no shape opener the identifier is a bare reference. The node is
// registered before a missing-closer error is raised so the partial model
// keeps the endpoint.
func (p *flowchartParser) parseNodeDefinition(id Token) error {
	open := p.peek()
	delims, ok := shapeDelims[open.Kind]
	if !ok {
		p.chart.ensureNode(id.Lexeme, id.Line)
		return nil
	}
	p.next()

	var text textBuilder
	for {
		tok := p.peek()
		switch tok.Kind {
		case delims.closer:
			p.next()
			p.chart.defineNode(id.Lexeme, text.String(), delims.shape, id.Line)
			return nil
		case TokenNewline, TokenEOF:
			p.chart.defineNode(id.Lexeme, text.String(), delims.shape, id.Line)
			return syntaxError(tok, "unclosed node text for %q: expected %s", id.Lexeme, delims.closer)
		case TokenPipe:
			// Pipes delimit edge labels, never node text.
			p.next()
		default:
			p.next()
			text.write(tok.Lexeme)
		}
	}
}

// parseEdgeChain parses Arrow Label? Node (Arrow Label? Node)* where each
// destination becomes the source of the next link.
func (p *flowchartParser) parseEdgeChain(from string) error {
	for isArrowKind(p.peek().Kind) {
		arrow := p.next()
		cls := arrowTable[arrow.Kind]

		var label string
		if p.peek().Kind == TokenPipe {
			lbl, err := p.parseEdgeLabel()
			if err != nil {
				return err
			}
			label = lbl
		}

		dst := p.peek()
		if dst.Kind != TokenIdentifier {
			return syntaxError(dst, "expected node identifier after %s", arrow.Kind)
		}
		p.next()

		defErr := p.parseNodeDefinition(dst)
		p.chart.Edges = append(p.chart.Edges, &FlowchartEdge{
			From:      from,
			To:        dst.Lexeme,
			Label:     label,
			Style:     cls.style,
			Arrowhead: cls.head,
			MinLength: minLength(arrow),
		})
		if defErr != nil {
			return defErr
		}
		from = dst.Lexeme
	}
	return nil
}

// parseEdgeLabel parses |text| with single-space word separation.
func (p *flowchartParser) parseEdgeLabel() (string, error) {
	p.next() // consume opening |
	var words []string
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenPipe:
			p.next()
			return strings.Join(words, " "), nil
		case TokenNewline, TokenEOF:
			return "", syntaxError(tok, "unclosed edge label: expected '|'")
		default:
			p.next()
			words = append(words, tok.Lexeme)
		}
	}
}

// parseSubgraph parses 'subgraph' Id Title? Contents 'end'. Membership is a
// shallow scan: identifiers already registered in the diagram's global node
// set are attributed to the subgraph; everything else inside the body is
// consumed without re-dispatch.
func (p *flowchartParser) parseSubgraph() (*FlowchartSubgraph, error) {
	p.next() // consume 'subgraph'

	idTok := p.peek()
	if idTok.Kind != TokenIdentifier {
		return nil, syntaxError(idTok, "expected subgraph identifier")
	}
	p.next()

	sg := &FlowchartSubgraph{ID: idTok.Lexeme, Direction: TopDown}

	switch p.peek().Kind {
	case TokenLSquare:
		title, err := p.parseBracketTitle()
		if err != nil {
			return sg, err
		}
		sg.Title = title
	case TokenString:
		sg.Title = p.next().Lexeme
	}

	seen := make(map[string]bool)
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF:
			return sg, syntaxError(tok, "missing 'end' for subgraph %q", sg.ID)
		case TokenEnd:
			p.next()
			return sg, nil
		case TokenDirection:
			p.next()
			if !isDirectionKind(p.peek().Kind) {
				return sg, syntaxError(p.peek(), "expected direction after 'direction'")
			}
			sg.Direction = directionOf(p.next().Kind)
			sg.HasDirection = true
		case TokenSubgraph:
			nested, err := p.parseSubgraph()
			if nested != nil {
				sg.Subgraphs = append(sg.Subgraphs, nested)
			}
			if err != nil {
				return sg, err
			}
		case TokenIdentifier:
			p.next()
			if p.chart.Node(tok.Lexeme) != nil && !seen[tok.Lexeme] {
				seen[tok.Lexeme] = true
				sg.NodeIDs = append(sg.NodeIDs, tok.Lexeme)
			}
		default:
			p.next()
		}
	}
}

// parseBracketTitle parses [free text] as a subgraph title.
func (p *flowchartParser) parseBracketTitle() (string, error) {
	p.next() // consume '['
	var text textBuilder
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenRSquare:
			p.next()
			return text.String(), nil
		case TokenNewline, TokenEOF:
			return "", syntaxError(tok, "unclosed subgraph title: expected ']'")
		default:
			p.next()
			text.write(tok.Lexeme)
		}
	}
}

// parseStyle consumes a style statement. Only the target is checked; the
// property body is discarded through end of line.
func (p *flowchartParser) parseStyle() error {
	p.next() // consume 'style'
	target := p.peek()
	if target.Kind != TokenIdentifier {
		return syntaxError(target, "expected style target identifier")
	}
	p.next()
	p.discardLine()
	return nil
}

// parseClassDef records the declared class name and discards the style body.
func (p *flowchartParser) parseClassDef() error {
	p.next() // consume 'classDef'
	name := p.peek()
	if name.Kind != TokenIdentifier {
		return syntaxError(name, "expected classDef name")
	}
	p.next()
	p.chart.ClassDefs = append(p.chart.ClassDefs, ClassDef{Name: name.Lexeme})
	p.discardLine()
	return nil
}
