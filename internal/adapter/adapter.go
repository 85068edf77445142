// # internal/adapter/adapter.go
package adapter

import (
	"strings"

	"syskb/internal/graph"
	"syskb/internal/semantic"
	"syskb/internal/syntax"
)

// Populator walks a parsed file and fills the symbol table and
// relationship graph. Population never aborts: duplicate definitions
// are collected as diagnostics and the first binding stays in place.
type Populator struct {
	table     *semantic.SymbolTable
	graph     *graph.RelationshipGraph
	namespace []string
	errs      []semantic.SemanticError
}

func NewPopulator(table *semantic.SymbolTable, g *graph.RelationshipGraph) *Populator {
	return &Populator{table: table, graph: g}
}

// Populate processes one file. The caller is expected to have called
// SetCurrentFile on the table beforehand.
func (p *Populator) Populate(file *syntax.File) []semantic.SemanticError {
	p.errs = nil
	if file == nil {
		return nil
	}
	if file.Namespace != nil {
		p.visitNamespace(file.Namespace)
	}
	p.visitElements(file.Elements)
	return p.errs
}

func (p *Populator) visitElements(elements []syntax.Element) {
	for _, el := range elements {
		p.visitElement(el)
	}
}

func (p *Populator) visitElement(el syntax.Element) {
	switch e := el.(type) {
	case *syntax.Namespace:
		p.visitNamespace(e)
	case *syntax.Package:
		p.visitPackage(e)
	case *syntax.Definition:
		p.visitDefinition(e)
	case *syntax.Usage:
		p.visitUsage(e)
	case *syntax.Classifier:
		p.visitClassifier(e)
	case *syntax.Feature:
		p.visitFeature(e)
	case *syntax.Import:
		p.visitImport(e)
	case *syntax.Alias:
		p.visitAlias(e)
	case *syntax.Comment:
		// Documentation contributes no symbols.
	}
}

// qualify returns name prefixed with the current namespace path.
func (p *Populator) qualify(name string) string {
	if len(p.namespace) == 0 {
		return name
	}
	return strings.Join(p.namespace, "::") + "::" + name
}

// insert binds sym in the current scope, recording a duplicate
// diagnostic when the name is already taken.
func (p *Populator) insert(name string, sym semantic.Symbol, span *syntax.Span) bool {
	if p.table.Insert(name, sym) {
		return true
	}
	var first *semantic.Location
	if prev, ok := p.table.Scope(p.table.CurrentScopeID()).Symbol(name); ok {
		first = semantic.WithLocation(prev.SourceFile(), prev.Span())
	}
	p.errs = append(p.errs, &semantic.DuplicateDefinitionError{
		Name:  p.qualify(name),
		Loc:   semantic.WithLocation(p.table.CurrentFile(), span),
		First: first,
	})
	return false
}

func (p *Populator) visitNamespace(ns *syntax.Namespace) {
	if ns == nil {
		return
	}
	if ns.Name == "" {
		p.visitElements(ns.Elements)
		return
	}
	qualified := p.qualify(ns.Name)
	sym := semantic.NewPackageSymbol(ns.Name, qualified, p.table.CurrentScopeID(), p.table.CurrentFile(), ns.Span)
	p.insert(ns.Name, sym, ns.Span)
	p.enter(ns.Name, ns.Elements)
}

func (p *Populator) visitPackage(pkg *syntax.Package) {
	if pkg.Name == "" {
		// Anonymous packages group elements without qualifying them.
		p.visitElements(pkg.Elements)
		return
	}
	qualified := p.qualify(pkg.Name)
	sym := semantic.NewPackageSymbol(pkg.Name, qualified, p.table.CurrentScopeID(), p.table.CurrentFile(), pkg.Span)
	p.insert(pkg.Name, sym, pkg.Span)
	p.enter(pkg.Name, pkg.Elements)
}

// enter pushes name onto the namespace stack, visits children in a new
// scope, and pops on the way out.
func (p *Populator) enter(name string, elements []syntax.Element) {
	p.namespace = append(p.namespace, name)
	p.table.EnterScope()
	p.visitElements(elements)
	p.table.ExitScope()
	p.namespace = p.namespace[:len(p.namespace)-1]
}

// definitionKindName maps surface definition kinds to symbol kinds.
// The case family collapses onto "UseCase" except verification cases,
// which stay distinct for traceability queries.
func definitionKindName(kind syntax.DefinitionKind) string {
	switch kind {
	case syntax.DefConcern, syntax.DefCase, syntax.DefAnalysisCase, syntax.DefUseCase:
		return "UseCase"
	case syntax.DefVerificationCase:
		return "VerificationCase"
	case syntax.DefPart:
		return "Part"
	case syntax.DefPort:
		return "Port"
	case syntax.DefAction:
		return "Action"
	case syntax.DefState:
		return "State"
	case syntax.DefItem:
		return "Item"
	case syntax.DefAttribute:
		return "Attribute"
	case syntax.DefRequirement:
		return "Requirement"
	case syntax.DefView:
		return "View"
	case syntax.DefViewpoint:
		return "Viewpoint"
	case syntax.DefRendering:
		return "Rendering"
	case syntax.DefConstraint:
		return "Constraint"
	case syntax.DefConnection:
		return "Connection"
	case syntax.DefInterface:
		return "Interface"
	case syntax.DefEnumeration:
		return "Enumeration"
	case syntax.DefAllocation:
		return "Allocation"
	case syntax.DefOccurrence:
		return "Occurrence"
	}
	return "Part"
}

func usageKindName(kind syntax.UsageKind) string {
	switch kind {
	case syntax.UseConcern, syntax.UseCase:
		return "UseCase"
	case syntax.UsePart:
		return "Part"
	case syntax.UsePort:
		return "Port"
	case syntax.UseAction:
		return "Action"
	case syntax.UseState:
		return "State"
	case syntax.UseItem:
		return "Item"
	case syntax.UseAttribute:
		return "Attribute"
	case syntax.UseRequirement:
		return "Requirement"
	case syntax.UseView:
		return "View"
	case syntax.UseConstraint:
		return "Constraint"
	case syntax.UseConnection:
		return "Connection"
	case syntax.UseInterface:
		return "Interface"
	case syntax.UseOccurrence:
		return "Occurrence"
	case syntax.UseRef:
		return "Ref"
	case syntax.UseSatisfyRequirement:
		return "SatisfyRequirement"
	case syntax.UsePerformAction:
		return "PerformAction"
	case syntax.UseExhibitState:
		return "ExhibitState"
	case syntax.UseIncludeUseCase:
		return "IncludeUseCase"
	}
	return "Ref"
}

func (p *Populator) visitDefinition(def *syntax.Definition) {
	qualified := p.qualify(def.Name)
	sym := semantic.NewDefinitionSymbol(def.Name, qualified, definitionKindName(def.Kind), def.IsAbstract, p.table.CurrentScopeID(), p.table.CurrentFile(), def.Span)
	p.insert(def.Name, sym, def.Span)

	for _, target := range def.Relationships.Specializes {
		p.graph.AddOneToMany(graph.Specialization, qualified, target.Name)
	}
	// Relationship verbs nested in the body attach to the definition.
	for _, el := range def.Body {
		usage, ok := el.(*syntax.Usage)
		if !ok {
			continue
		}
		if target, kind := relationshipVerbEdge(usage); kind != "" {
			p.graph.AddOneToMany(kind, qualified, target)
		}
	}

	p.enter(def.Name, def.Body)
}

// relationshipVerbEdge extracts the edge a satisfy, perform, exhibit or
// include usage contributes, or "" when usage is not a relationship verb.
func relationshipVerbEdge(usage *syntax.Usage) (target, kind string) {
	switch usage.Kind {
	case syntax.UseSatisfyRequirement:
		kind = graph.Satisfy
	case syntax.UsePerformAction:
		kind = graph.Perform
	case syntax.UseExhibitState:
		kind = graph.Exhibit
	case syntax.UseIncludeUseCase:
		kind = graph.Include
	default:
		return "", ""
	}
	if usage.Relationships.TypedBy != nil {
		return usage.Relationships.TypedBy.Name, kind
	}
	if usage.Name != "" {
		return usage.Name, kind
	}
	return "", ""
}

func (p *Populator) visitUsage(usage *syntax.Usage) {
	name := usage.Name
	if name == "" {
		// Anonymous usages contribute edges through their enclosing
		// definition; without a name there is nothing to bind.
		return
	}
	qualified := p.qualify(name)
	usageType := ""
	if usage.Relationships.TypedBy != nil {
		usageType = usage.Relationships.TypedBy.Name
	}
	sym := semantic.NewUsageSymbol(name, qualified, usageKindName(usage.Kind), usageType, p.table.CurrentScopeID(), p.table.CurrentFile(), usage.Span)
	p.insert(name, sym, usage.Span)

	if usageType != "" {
		p.graph.AddOneToOne(graph.Typing, qualified, usageType)
	}
	for _, target := range usage.Relationships.Redefines {
		p.graph.AddOneToMany(graph.Redefinition, qualified, target.Name)
	}
	for _, target := range usage.Relationships.Subsets {
		p.graph.AddOneToMany(graph.Subsetting, qualified, target.Name)
	}
	for _, target := range usage.Relationships.References {
		p.graph.AddOneToMany(graph.ReferenceSubsetting, qualified, target.Name)
	}
	for _, target := range usage.Relationships.Crosses {
		p.graph.AddOneToMany(graph.CrossSubsetting, qualified, target.Name)
	}
}

func (p *Populator) visitClassifier(c *syntax.Classifier) {
	qualified := p.qualify(c.Name)
	sym := semantic.NewClassifierSymbol(c.Name, qualified, c.Kind.String(), c.IsAbstract, p.table.CurrentScopeID(), p.table.CurrentFile(), c.Span)
	p.insert(c.Name, sym, c.Span)

	for _, target := range c.Relationships.Specializes {
		p.graph.AddOneToMany(graph.Specialization, qualified, target.Name)
	}
	p.enter(c.Name, c.Body)
}

func (p *Populator) visitFeature(f *syntax.Feature) {
	qualified := p.qualify(f.Name)
	featureType := ""
	if f.Relationships.TypedBy != nil {
		featureType = f.Relationships.TypedBy.Name
	}
	sym := semantic.NewFeatureSymbol(f.Name, qualified, featureType, p.table.CurrentScopeID(), p.table.CurrentFile(), f.Span)
	p.insert(f.Name, sym, f.Span)

	if featureType != "" {
		p.graph.AddOneToOne(graph.Typing, qualified, featureType)
	}
	for _, target := range f.Relationships.Subsets {
		p.graph.AddOneToMany(graph.Subsetting, qualified, target.Name)
	}
	for _, target := range f.Relationships.Redefines {
		p.graph.AddOneToMany(graph.Redefinition, qualified, target.Name)
	}
}

func (p *Populator) visitImport(imp *syntax.Import) {
	p.table.AddImport(imp.Path, imp.IsNamespace, imp.IsRecursive, imp.Span)
}

func (p *Populator) visitAlias(alias *syntax.Alias) {
	qualified := p.qualify(alias.Name)
	sym := semantic.NewAliasSymbol(alias.Name, qualified, alias.Target, p.table.CurrentScopeID(), p.table.CurrentFile(), alias.Span)
	p.insert(alias.Name, sym, alias.Span)
}
