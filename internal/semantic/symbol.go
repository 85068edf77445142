// # internal/semantic/symbol.go
package semantic

import "syskb/internal/syntax"

// Reference records one mention of a symbol at a source location.
type Reference struct {
	File string
	Span syntax.Span
}

// Symbol is the closed set of entries a symbol table scope can hold.
// All variants embed symbolData; new variants are not expected.
type Symbol interface {
	Name() string
	QualifiedName() string
	ScopeID() int
	SourceFile() string
	Span() *syntax.Span
	References() []Reference
	AddReference(ref Reference)
	symbol()
}

type symbolData struct {
	name          string
	qualifiedName string
	scopeID       int
	sourceFile    string
	span          *syntax.Span
	references    []Reference
}

func (s *symbolData) Name() string          { return s.name }
func (s *symbolData) QualifiedName() string { return s.qualifiedName }
func (s *symbolData) ScopeID() int          { return s.scopeID }
func (s *symbolData) SourceFile() string    { return s.sourceFile }
func (s *symbolData) Span() *syntax.Span    { return s.span }

func (s *symbolData) References() []Reference { return s.references }
func (s *symbolData) AddReference(ref Reference) {
	s.references = append(s.references, ref)
}

func (s *symbolData) symbol() {}

// PackageSymbol is a package or root namespace.
type PackageSymbol struct {
	symbolData
}

// ClassifierSymbol is a KerML classifier. Kind is the surface keyword
// ("class", "classifier", "datatype", ...).
type ClassifierSymbol struct {
	symbolData
	Kind       string
	IsAbstract bool
}

// FeatureSymbol is a KerML feature. FeatureType is the raw typing
// reference as written, empty when untyped.
type FeatureSymbol struct {
	symbolData
	FeatureType string
}

// DefinitionSymbol is a SysML definition. Kind is the normalized
// definition kind name.
type DefinitionSymbol struct {
	symbolData
	Kind       string
	IsAbstract bool
}

// UsageSymbol is a SysML usage. UsageType is the raw typing reference as
// written, empty when untyped.
type UsageSymbol struct {
	symbolData
	Kind      string
	UsageType string
}

// AliasSymbol maps an alternative name onto a target, stored as written
// in source. Lookup resolves through it; direct scope queries do not.
type AliasSymbol struct {
	symbolData
	Target string
}

func newSymbolData(name, qualifiedName string, scopeID int, sourceFile string, span *syntax.Span) symbolData {
	return symbolData{
		name:          name,
		qualifiedName: qualifiedName,
		scopeID:       scopeID,
		sourceFile:    sourceFile,
		span:          span,
	}
}

func NewPackageSymbol(name, qualifiedName string, scopeID int, sourceFile string, span *syntax.Span) *PackageSymbol {
	return &PackageSymbol{symbolData: newSymbolData(name, qualifiedName, scopeID, sourceFile, span)}
}

func NewClassifierSymbol(name, qualifiedName string, kind string, abstract bool, scopeID int, sourceFile string, span *syntax.Span) *ClassifierSymbol {
	return &ClassifierSymbol{
		symbolData: newSymbolData(name, qualifiedName, scopeID, sourceFile, span),
		Kind:       kind,
		IsAbstract: abstract,
	}
}

func NewFeatureSymbol(name, qualifiedName, featureType string, scopeID int, sourceFile string, span *syntax.Span) *FeatureSymbol {
	return &FeatureSymbol{
		symbolData:  newSymbolData(name, qualifiedName, scopeID, sourceFile, span),
		FeatureType: featureType,
	}
}

func NewDefinitionSymbol(name, qualifiedName, kind string, abstract bool, scopeID int, sourceFile string, span *syntax.Span) *DefinitionSymbol {
	return &DefinitionSymbol{
		symbolData: newSymbolData(name, qualifiedName, scopeID, sourceFile, span),
		Kind:       kind,
		IsAbstract: abstract,
	}
}

func NewUsageSymbol(name, qualifiedName, kind, usageType string, scopeID int, sourceFile string, span *syntax.Span) *UsageSymbol {
	return &UsageSymbol{
		symbolData: newSymbolData(name, qualifiedName, scopeID, sourceFile, span),
		Kind:       kind,
		UsageType:  usageType,
	}
}

func NewAliasSymbol(name, qualifiedName, target string, scopeID int, sourceFile string, span *syntax.Span) *AliasSymbol {
	return &AliasSymbol{
		symbolData: newSymbolData(name, qualifiedName, scopeID, sourceFile, span),
		Target:     target,
	}
}
