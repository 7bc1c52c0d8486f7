package mermaid

import "strings"

// ParseClassDiagram parses Mermaid class-diagram source and returns the
// model. It never returns an error: every failure is recorded in the model's
// Errors list and parsing resumes at the next statement boundary.
func ParseClassDiagram(src []byte) *ClassDiagram {
	diagram := newClassDiagram()
	p := &classParser{cursor: newCursor(ScanAll(src)), diagram: diagram}
	p.parse()
	return diagram
}

type classParser struct {
	*cursor
	diagram *ClassDiagram
}

// classSyncKinds are the statement-starting keywords recovery stops at.
var classSyncKinds = []TokenKind{TokenClass, TokenTitle}

// relationTable classifies relation arrow token kinds. Kinds absent from
// the table fall back to association; that fallback is deliberate
// permissiveness, not an error.
var relationTable = map[TokenKind]RelationType{
	TokenRelInheritL:      RelationInheritance,
	TokenRelInheritR:      RelationInheritance,
	TokenRelRealizeL:      RelationRealization,
	TokenRelRealizeR:      RelationRealization,
	TokenRelDependL:       RelationDependency,
	TokenRelDependR:       RelationDependency,
	TokenRelCompose:       RelationComposition,
	TokenRelAggregate:     RelationAggregation,
	TokenArrowSolidCircle: RelationAggregation,
	TokenArrowDotted:      RelationDependency,
	TokenLineDotted:       RelationDependency,
}

func (p *classParser) parse() {
	p.skipTrivia()

	if p.peek().Kind != TokenClassDiagram {
		p.diagram.Errors = append(p.diagram.Errors, headerError("expected 'classDiagram' header"))
		return
	}
	p.next()

	for !p.atEnd() {
		if err := p.parseStatement(); err != nil {
			p.diagram.Errors = append(p.diagram.Errors, asParseError(err))
			p.synchronize(classSyncKinds...)
		}
	}
}

func (p *classParser) parseStatement() error {
	switch tok := p.peek(); tok.Kind {
	case TokenNewline, TokenSemicolon, TokenComment:
		p.next()
		return nil
	case TokenTitle:
		p.parseTitle()
		return nil
	case TokenClass:
		return p.parseClass()
	case TokenIdentifier:
		return p.parseRelationOrReference()
	default:
		p.next()
		return nil
	}
}

// parseTitle joins the remaining statement tokens into the diagram title.
func (p *classParser) parseTitle() {
	p.next() // consume 'title'
	var words []string
	for {
		tok := p.peek()
		if tok.Kind == TokenNewline || tok.Kind == TokenEOF {
			break
		}
		p.next()
		words = append(words, tok.Lexeme)
	}
	p.diagram.Title = strings.Join(words, " ")
}

// parseClass parses 'class' Name ('{' Members '}')?.
func (p *classParser) parseClass() error {
	p.next() // consume 'class'

	nameTok := p.peek()
	if nameTok.Kind != TokenIdentifier {
		return syntaxError(nameTok, "expected class name after 'class'")
	}
	p.next()

	cls := p.diagram.ensureClass(nameTok.Lexeme, nameTok.Line)

	if p.peek().Kind == TokenLBrace {
		return p.parseMemberList(cls)
	}
	return nil
}

// parseMemberList parses member productions until the closing brace. A
// production that yields no member must still consume at least one token.
func (p *classParser) parseMemberList(cls *Class) error {
	p.next() // consume '{'
	for {
		p.skipTrivia()
		tok := p.peek()
		switch tok.Kind {
		case TokenRBrace:
			p.next()
			return nil
		case TokenEOF:
			return syntaxError(tok, "missing '}' in body of class %q", cls.Name)
		default:
			before := p.save()
			member, ok := p.parseMember()
			if ok {
				cls.Members = append(cls.Members, member)
			} else if p.save() == before {
				p.next()
			}
		}
	}
}

// parseMember parses one member production: optional visibility marker,
// optional "Type name" two-token form, optional parameter list, optional
// ':' trailing type annotation, then a discard of the remaining tail.
func (p *classParser) parseMember() (ClassMember, bool) {
	vis := VisibilityPublic
	switch p.peek().Kind {
	case TokenPlus:
		p.next()
	case TokenHash:
		p.next()
		vis = VisibilityProtected
	case TokenTilde:
		p.next()
		vis = VisibilityPackage
	case TokenMinus:
		// '-' is also the first character of several arrow lexemes. It is a
		// visibility marker only when an identifier follows; otherwise roll
		// back and abandon the production.
		mark := p.save()
		p.next()
		if p.peek().Kind != TokenIdentifier {
			p.restore(mark)
			return ClassMember{}, false
		}
		vis = VisibilityPrivate
	}

	if p.peek().Kind != TokenIdentifier {
		return ClassMember{}, false
	}
	first := p.next()

	member := ClassMember{Name: first.Lexeme, Visibility: vis}

	// "Type name" form: two consecutive identifiers.
	if p.peek().Kind == TokenIdentifier {
		second := p.next()
		member.TypeName = first.Lexeme
		member.Name = second.Lexeme
	}

	if p.peek().Kind == TokenLRound {
		member.IsMethod = true
		p.skipParameters()
	}

	if p.peek().Kind == TokenColon {
		p.next()
		typeName, isMethod := p.parseTypeAnnotation()
		if isMethod {
			member.IsMethod = true
		} else if typeName != "" {
			member.TypeName = typeName
		}
	}

	p.discardMemberTail()
	return member, true
}

// skipParameters consumes a '(' ... ')' span verbatim. Parameter names and
// types are not modeled.
func (p *classParser) skipParameters() {
	p.next() // consume '('
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch tok.Kind {
		case TokenLRound:
			depth++
		case TokenRRound:
			depth--
		case TokenNewline, TokenRBrace, TokenEOF:
			return
		}
		p.next()
	}
}

// parseTypeAnnotation accumulates a ':'-led Mermaid type annotation. A '('
// encountered mid-annotation reclassifies the member as a method and stops
// accumulation. Visibility markers end the annotation so several members can
// share one physical line.
func (p *classParser) parseTypeAnnotation() (string, bool) {
	var words []string
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenNewline, TokenRBrace, TokenEOF, TokenPlus, TokenHash, TokenMinus:
			return strings.Join(words, " "), false
		case TokenLRound:
			return "", true
		default:
			p.next()
			words = append(words, tok.Lexeme)
		}
	}
}

// discardMemberTail drops trailing tokens not otherwise modeled, stopping at
// a member boundary.
func (p *classParser) discardMemberTail() {
	for {
		switch p.peek().Kind {
		case TokenNewline, TokenRBrace, TokenEOF,
			TokenPlus, TokenHash, TokenMinus, TokenTilde:
			return
		default:
			p.next()
		}
	}
}

// parseRelationOrReference parses Identifier (RelationArrow Identifier
// (':' Label)?)?. The first identifier alone is a bare class reference.
func (p *classParser) parseRelationOrReference() error {
	from := p.next()
	p.diagram.ensureClass(from.Lexeme, from.Line)

	arrow := p.peek()
	if !isRelationKind(arrow.Kind) {
		p.discardLine()
		return nil
	}
	p.next()

	dst := p.peek()
	if dst.Kind != TokenIdentifier {
		return syntaxError(dst, "expected class name after %s", arrow.Kind)
	}
	p.next()
	p.diagram.ensureClass(dst.Lexeme, dst.Line)

	rel := &Relation{
		From: from.Lexeme,
		To:   dst.Lexeme,
		Type: relationTable[arrow.Kind],
	}

	if p.peek().Kind == TokenColon {
		p.next()
		var words []string
		for {
			tok := p.peek()
			if tok.Kind == TokenNewline || tok.Kind == TokenEOF {
				break
			}
			p.next()
			words = append(words, tok.Lexeme)
		}
		rel.Label = strings.Join(words, " ")
	}

	p.diagram.Relations = append(p.diagram.Relations, rel)
	return nil
}
