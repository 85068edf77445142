// # internal/parser/parser.go
package parser

import (
	"fmt"

	"syskb/internal/syntax"
)

// Error is a syntax diagnostic with its source position.
type Error struct {
	File string
	Pos  syntax.Position
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Pos.Line+1, e.Pos.Column+1, e.Msg)
}

type parser struct {
	path string
	toks []token
	pos  int
	errs []*Error
}

// Parse parses one source file. It always returns a file, alongside any
// syntax errors; declarations after an error are recovered at the next
// statement boundary.
func Parse(path, src string) (*syntax.File, []*Error) {
	p := &parser{path: path, toks: lex(src)}
	file := &syntax.File{Path: path}

	if p.peek().kind == tokIdent && p.peek().text == "namespace" {
		file.Namespace = p.parseNamespace()
	}
	for p.peek().kind != tokEOF {
		// A closing brace with no open body would stall recovery: sync
		// stops at it so nested loops can exit. Report and skip it here.
		if t := p.peek(); t.kind == tokRBrace {
			p.errorf(t.pos, "unexpected %q", t.text)
			p.next()
			continue
		}
		el := p.parseElement()
		if el != nil {
			file.Elements = append(file.Elements, el)
		}
	}
	return file, p.errs
}

func (p *parser) peek() token    { return p.toks[p.pos] }
func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(pos syntax.Position, format string, args ...any) {
	p.errs = append(p.errs, &Error{File: p.path, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// sync skips forward to just past the next statement boundary.
func (p *parser) sync() {
	for {
		switch p.peek().kind {
		case tokEOF:
			return
		case tokSemi:
			p.next()
			return
		case tokRBrace:
			return
		default:
			p.next()
		}
	}
}

func (p *parser) expect(kind tokenKind, what string) (token, bool) {
	t := p.peek()
	if t.kind != kind {
		p.errorf(t.pos, "expected %s, found %q", what, t.text)
		return t, false
	}
	return p.next(), true
}

func (p *parser) expectIdent(what string) (token, bool) {
	return p.expect(tokIdent, what)
}

// spanFrom closes a span starting at start and ending at the previous
// token.
func (p *parser) spanFrom(start syntax.Position) *syntax.Span {
	end := start
	if p.pos > 0 {
		prev := p.toks[p.pos-1]
		end = syntax.Position{Line: prev.pos.Line, Column: prev.pos.Column + len(prev.text)}
	}
	return &syntax.Span{Start: start, End: end}
}

// qualifiedName parses ident (:: ident)* and returns the joined path.
func (p *parser) qualifiedName() (string, bool) {
	t, ok := p.expectIdent("name")
	if !ok {
		return "", false
	}
	name := t.text
	for p.peek().kind == tokPathSep && p.peekAt(1).kind == tokIdent {
		p.next()
		name += "::" + p.next().text
	}
	return name, true
}

var definitionKinds = map[string]syntax.DefinitionKind{
	"part":         syntax.DefPart,
	"port":         syntax.DefPort,
	"action":       syntax.DefAction,
	"state":        syntax.DefState,
	"item":         syntax.DefItem,
	"attribute":    syntax.DefAttribute,
	"requirement":  syntax.DefRequirement,
	"concern":      syntax.DefConcern,
	"case":         syntax.DefCase,
	"view":         syntax.DefView,
	"viewpoint":    syntax.DefViewpoint,
	"rendering":    syntax.DefRendering,
	"constraint":   syntax.DefConstraint,
	"connection":   syntax.DefConnection,
	"interface":    syntax.DefInterface,
	"enum":         syntax.DefEnumeration,
	"allocation":   syntax.DefAllocation,
	"occurrence":   syntax.DefOccurrence,
	"analysis":     syntax.DefAnalysisCase,
	"verification": syntax.DefVerificationCase,
	"use":          syntax.DefUseCase,
}

var usageKinds = map[string]syntax.UsageKind{
	"part":        syntax.UsePart,
	"port":        syntax.UsePort,
	"action":      syntax.UseAction,
	"state":       syntax.UseState,
	"item":        syntax.UseItem,
	"attribute":   syntax.UseAttribute,
	"requirement": syntax.UseRequirement,
	"concern":     syntax.UseConcern,
	"case":        syntax.UseCase,
	"view":        syntax.UseView,
	"constraint":  syntax.UseConstraint,
	"connection":  syntax.UseConnection,
	"interface":   syntax.UseInterface,
	"occurrence":  syntax.UseOccurrence,
}

var classifierKinds = map[string]syntax.ClassifierKind{
	"class":      syntax.ClassClass,
	"classifier": syntax.ClassClassifier,
	"datatype":   syntax.ClassDataType,
	"struct":     syntax.ClassStruct,
	"assoc":      syntax.ClassAssociation,
	"behavior":   syntax.ClassBehavior,
	"function":   syntax.ClassFunction,
}

var relationshipVerbs = map[string]syntax.UsageKind{
	"satisfy": syntax.UseSatisfyRequirement,
	"perform": syntax.UsePerformAction,
	"exhibit": syntax.UseExhibitState,
	"include": syntax.UseIncludeUseCase,
}

func (p *parser) parseElement() syntax.Element {
	t := p.peek()
	switch t.kind {
	case tokComment:
		p.next()
		return &syntax.Comment{Text: t.text, Span: p.spanFrom(t.pos)}
	case tokSemi:
		p.next()
		return nil
	case tokIdent:
		return p.parseKeyword()
	default:
		p.errorf(t.pos, "unexpected %q", t.text)
		p.sync()
		return nil
	}
}

func (p *parser) parseKeyword() syntax.Element {
	t := p.peek()
	switch t.text {
	case "package":
		return p.parsePackage()
	case "import":
		return p.parseImport()
	case "alias":
		return p.parseAlias()
	case "doc", "comment":
		// Documentation keyword; the body follows as a block comment.
		p.next()
		if c := p.peek(); c.kind == tokComment {
			p.next()
			return &syntax.Comment{Text: c.text, Span: p.spanFrom(t.pos)}
		}
		return nil
	case "feature":
		return p.parseFeature()
	case "abstract", "variation":
		return p.parseDefinitionLike()
	case "ref":
		return p.parseUsage(t.pos, syntax.UseRef, true)
	}
	if _, ok := relationshipVerbs[t.text]; ok {
		return p.parseRelationshipUsage()
	}
	if _, ok := classifierKinds[t.text]; ok {
		return p.parseClassifier(false)
	}
	if _, ok := definitionKinds[t.text]; ok {
		return p.parseDefinitionLike()
	}
	// Bare `name : Type;` member.
	if p.peekAt(1).kind == tokColon || p.peekAt(1).kind == tokSubsets ||
		p.peekAt(1).kind == tokRedefines || p.peekAt(1).kind == tokReferences {
		return p.parseUsage(t.pos, syntax.UseRef, false)
	}
	p.errorf(t.pos, "unexpected %q", t.text)
	p.sync()
	return nil
}

func (p *parser) parseNamespace() *syntax.Namespace {
	start := p.next().pos // namespace
	name, ok := p.qualifiedName()
	if !ok {
		p.sync()
		return nil
	}
	ns := &syntax.Namespace{Name: name}
	ns.Elements = p.parseBody()
	ns.Span = p.spanFrom(start)
	return ns
}

func (p *parser) parsePackage() syntax.Element {
	start := p.next().pos // package
	pkg := &syntax.Package{}
	if p.peek().kind == tokIdent {
		name, ok := p.qualifiedName()
		if !ok {
			p.sync()
			return nil
		}
		pkg.Name = name
	}
	pkg.Elements = p.parseBody()
	pkg.Span = p.spanFrom(start)
	return pkg
}

func (p *parser) parseImport() syntax.Element {
	start := p.next().pos // import
	imp := &syntax.Import{}
	if p.peek().kind == tokStar {
		p.next()
		imp.Path = "*"
		imp.IsNamespace = true
	} else {
		path, ok := p.qualifiedName()
		if !ok {
			p.sync()
			return nil
		}
		imp.Path = path
		if p.peek().kind == tokPathSep && p.peekAt(1).kind == tokStar {
			p.next()
			p.next()
			if p.peek().kind == tokStar {
				p.next()
				imp.IsRecursive = true
			} else {
				imp.IsNamespace = true
			}
		}
	}
	p.expect(tokSemi, "';'")
	imp.Span = p.spanFrom(start)
	return imp
}

func (p *parser) parseAlias() syntax.Element {
	start := p.next().pos // alias
	name, ok := p.expectIdent("alias name")
	if !ok {
		p.sync()
		return nil
	}
	if kw := p.peek(); kw.kind != tokIdent || kw.text != "for" {
		p.errorf(kw.pos, "expected 'for', found %q", kw.text)
		p.sync()
		return nil
	}
	p.next()
	target, ok := p.qualifiedName()
	if !ok {
		p.sync()
		return nil
	}
	p.expect(tokSemi, "';'")
	return &syntax.Alias{Name: name.text, Target: target, Span: p.spanFrom(start)}
}

// parseDefinitionLike parses `[abstract] [variation] <kind> [def]` and
// dispatches to a definition, classifier, or usage.
func (p *parser) parseDefinitionLike() syntax.Element {
	start := p.peek().pos
	abstract := false
	variation := false
	for p.peek().kind == tokIdent {
		if p.peek().text == "abstract" {
			abstract = true
			p.next()
			continue
		}
		if p.peek().text == "variation" {
			variation = true
			p.next()
			continue
		}
		break
	}

	kw := p.peek()
	if kw.kind != tokIdent {
		p.errorf(kw.pos, "expected definition kind, found %q", kw.text)
		p.sync()
		return nil
	}
	if _, ok := classifierKinds[kw.text]; ok {
		return p.parseClassifier(abstract)
	}
	defKind, ok := definitionKinds[kw.text]
	if !ok {
		p.errorf(kw.pos, "unexpected %q", kw.text)
		p.sync()
		return nil
	}
	p.next()

	// Two-word kinds: `use case`, `analysis case`, `verification case`.
	switch defKind {
	case syntax.DefUseCase, syntax.DefAnalysisCase, syntax.DefVerificationCase:
		if c := p.peek(); c.kind == tokIdent && c.text == "case" {
			p.next()
		}
	}

	if d := p.peek(); d.kind == tokIdent && d.text == "def" {
		p.next()
		return p.parseDefinition(start, defKind, abstract, variation)
	}
	usageKind, ok := usageKinds[kw.text]
	if !ok {
		switch defKind {
		case syntax.DefUseCase, syntax.DefAnalysisCase, syntax.DefVerificationCase:
			usageKind = syntax.UseCase
		default:
			p.errorf(kw.pos, "%q cannot be used here", kw.text)
			p.sync()
			return nil
		}
	}
	return p.parseUsage(start, usageKind, false)
}

func (p *parser) parseDefinition(start syntax.Position, kind syntax.DefinitionKind, abstract, variation bool) syntax.Element {
	name, ok := p.expectIdent("definition name")
	if !ok {
		p.sync()
		return nil
	}
	d := &syntax.Definition{
		Kind:        kind,
		Name:        name.text,
		IsAbstract:  abstract,
		IsVariation: variation,
	}
	p.parseRelationships(&d.Relationships, true)
	d.Body = p.parseBody()
	d.Span = p.spanFrom(start)
	return d
}

func (p *parser) parseClassifier(abstract bool) syntax.Element {
	start := p.peek().pos
	kind := classifierKinds[p.next().text]
	name, ok := p.expectIdent("classifier name")
	if !ok {
		p.sync()
		return nil
	}
	c := &syntax.Classifier{Kind: kind, Name: name.text, IsAbstract: abstract}
	p.parseRelationships(&c.Relationships, true)
	c.Body = p.parseBody()
	c.Span = p.spanFrom(start)
	return c
}

func (p *parser) parseFeature() syntax.Element {
	start := p.next().pos // feature
	name, ok := p.expectIdent("feature name")
	if !ok {
		p.sync()
		return nil
	}
	f := &syntax.Feature{Name: name.text}
	p.parseRelationships(&f.Relationships, false)
	f.Body = p.parseBody()
	f.Span = p.spanFrom(start)
	return f
}

// parseUsage parses a usage whose kind keyword (if any) is already
// consumed except for named kinds, where the keyword is still pending.
func (p *parser) parseUsage(start syntax.Position, kind syntax.UsageKind, refKeyword bool) syntax.Element {
	if refKeyword {
		p.next() // ref
		if k := p.peek(); k.kind == tokIdent {
			if uk, ok := usageKinds[k.text]; ok {
				kind = uk
				p.next()
			}
		}
	}
	u := &syntax.Usage{Kind: kind, IsReference: refKeyword}
	if n := p.peek(); n.kind == tokIdent && !isRelationshipWord(n.text) {
		nameTok := p.next()
		name := nameTok.text
		qualified := false
		for p.peek().kind == tokPathSep && p.peekAt(1).kind == tokIdent {
			qualified = true
			p.next()
			name += "::" + p.next().text
		}
		if qualified {
			// A qualified path in name position is an anonymous usage
			// typed by that path.
			u.Relationships.TypedBy = &syntax.Target{Name: name, Span: p.spanFrom(nameTok.pos)}
		} else {
			u.Name = name
		}
	}
	p.parseRelationships(&u.Relationships, false)
	u.Body = p.parseBody()
	u.Span = p.spanFrom(start)
	return u
}

// parseRelationshipUsage parses `satisfy X;`, `perform action a : A {}`
// and the other relationship verbs.
func (p *parser) parseRelationshipUsage() syntax.Element {
	start := p.peek().pos
	kind := relationshipVerbs[p.next().text]
	// Optional spelled-out kind keyword (`satisfy requirement ...`).
	if k := p.peek(); k.kind == tokIdent {
		switch k.text {
		case "requirement", "action", "state":
			p.next()
		case "use":
			p.next()
			if c := p.peek(); c.kind == tokIdent && c.text == "case" {
				p.next()
			}
		}
	}
	u := &syntax.Usage{Kind: kind}

	// `satisfy Target;` names the target, `satisfy name : Target;` names
	// a nested usage typed by the target.
	if n := p.peek(); n.kind == tokIdent {
		nameTok := p.next()
		name := nameTok.text
		for p.peek().kind == tokPathSep && p.peekAt(1).kind == tokIdent {
			p.next()
			name += "::" + p.next().text
		}
		if p.peek().kind == tokColon || isRelationshipStart(p.peek()) {
			u.Name = name
		} else {
			u.Relationships.TypedBy = &syntax.Target{Name: name, Span: p.spanFrom(nameTok.pos)}
		}
	}
	p.parseRelationships(&u.Relationships, false)
	u.Body = p.parseBody()
	u.Span = p.spanFrom(start)
	return u
}

func isRelationshipStart(t token) bool {
	switch t.kind {
	case tokColon, tokSubsets, tokRedefines, tokReferences:
		return true
	case tokIdent:
		return isRelationshipWord(t.text)
	}
	return false
}

func isRelationshipWord(s string) bool {
	switch s {
	case "specializes", "subsets", "redefines", "references", "crosses", "defined":
		return true
	}
	return false
}

// parseRelationships consumes relationship clauses up to the body or
// statement end. Definitions route `:>` to Specializes, other
// declarations to Subsets.
func (p *parser) parseRelationships(rel *syntax.Relationships, isDefinition bool) {
	for {
		t := p.peek()
		switch {
		case t.kind == tokColon:
			p.next()
			p.parseTarget(func(target syntax.Target) {
				rel.TypedBy = &target
			})
		case t.kind == tokSubsets || (t.kind == tokIdent && t.text == "specializes"):
			p.next()
			p.parseTargets(func(target syntax.Target) {
				if isDefinition {
					rel.Specializes = append(rel.Specializes, target)
				} else {
					rel.Subsets = append(rel.Subsets, target)
				}
			})
		case t.kind == tokIdent && t.text == "subsets":
			p.next()
			p.parseTargets(func(target syntax.Target) {
				rel.Subsets = append(rel.Subsets, target)
			})
		case t.kind == tokRedefines || (t.kind == tokIdent && t.text == "redefines"):
			p.next()
			p.parseTargets(func(target syntax.Target) {
				rel.Redefines = append(rel.Redefines, target)
			})
		case t.kind == tokReferences || (t.kind == tokIdent && t.text == "references"):
			p.next()
			p.parseTargets(func(target syntax.Target) {
				rel.References = append(rel.References, target)
			})
		case t.kind == tokIdent && t.text == "crosses":
			p.next()
			p.parseTargets(func(target syntax.Target) {
				rel.Crosses = append(rel.Crosses, target)
			})
		case t.kind == tokIdent && t.text == "defined":
			p.next()
			if by := p.peek(); by.kind == tokIdent && by.text == "by" {
				p.next()
			}
			p.parseTarget(func(target syntax.Target) {
				rel.TypedBy = &target
			})
		case t.kind == tokEquals:
			// Default value expression; skip to the statement boundary
			// without consuming it.
			for {
				k := p.peek().kind
				if k == tokSemi || k == tokLBrace || k == tokRBrace || k == tokEOF {
					return
				}
				p.next()
			}
		default:
			return
		}
	}
}

func (p *parser) parseTarget(add func(syntax.Target)) {
	start := p.peek().pos
	name, ok := p.qualifiedName()
	if !ok {
		p.sync()
		return
	}
	add(syntax.Target{Name: name, Span: p.spanFrom(start)})
}

func (p *parser) parseTargets(add func(syntax.Target)) {
	p.parseTarget(add)
	for p.peek().kind == tokComma {
		p.next()
		p.parseTarget(add)
	}
}

// parseBody parses `{ element* }` or a terminating `;`.
func (p *parser) parseBody() []syntax.Element {
	switch p.peek().kind {
	case tokSemi:
		p.next()
		return nil
	case tokLBrace:
		p.next()
		var elements []syntax.Element
		for p.peek().kind != tokRBrace && p.peek().kind != tokEOF {
			if el := p.parseElement(); el != nil {
				elements = append(elements, el)
			}
		}
		p.expect(tokRBrace, "'}'")
		return elements
	default:
		p.errorf(p.peek().pos, "expected '{' or ';', found %q", p.peek().text)
		p.sync()
		return nil
	}
}
