// # internal/syntax/types.go
package syntax

// File is the parse result for a single source file. Namespace, when
// present, wraps every top-level element in a root namespace declaration.
type File struct {
	Path      string
	Namespace *Namespace
	Elements  []Element
}

// Element is the closed set of syntax nodes the semantic layer consumes.
type Element interface {
	element()
}

// Namespace is a `namespace N { ... }` root declaration.
type Namespace struct {
	Name     string
	Elements []Element
	Span     *Span
}

// Package groups nested elements under a shared qualifier. An empty Name
// means an anonymous package, which contributes no symbol of its own.
type Package struct {
	Name     string
	Elements []Element
	Span     *Span
}

// Target is a single relationship endpoint as written in source.
type Target struct {
	Name string
	Span *Span
}

// Relationships carries every relationship clause attached to a declaration.
type Relationships struct {
	Specializes []Target
	Redefines   []Target
	Subsets     []Target
	References  []Target
	Crosses     []Target
	TypedBy     *Target
}

// Definition is a SysML `<kind> def Name` declaration.
type Definition struct {
	Kind          DefinitionKind
	Name          string
	IsAbstract    bool
	IsVariation   bool
	Relationships Relationships
	Body          []Element
	Span          *Span
}

// Usage is a feature usage, including the relationship usages
// (satisfy, perform, exhibit, include) whose Name may be empty.
type Usage struct {
	Kind          UsageKind
	Name          string
	IsReference   bool
	Relationships Relationships
	Body          []Element
	Span          *Span
}

// Classifier is a KerML classifier declaration.
type Classifier struct {
	Kind          ClassifierKind
	Name          string
	IsAbstract    bool
	Relationships Relationships
	Body          []Element
	Span          *Span
}

// Feature is a KerML `feature x : T` declaration.
type Feature struct {
	Name          string
	Relationships Relationships
	Body          []Element
	Span          *Span
}

// Import is a `import A::B;`, `import A::*;` or `import A::**;` statement.
// Path never carries the trailing wildcard segment.
type Import struct {
	Path        string
	IsNamespace bool
	IsRecursive bool
	Span        *Span
}

// Alias is an `alias Short for Long::Qualified::Name;` statement.
type Alias struct {
	Name   string
	Target string
	Span   *Span
}

// Comment is documentation text. It produces no symbols.
type Comment struct {
	Text string
	Span *Span
}

func (*Namespace) element()  {}
func (*Package) element()    {}
func (*Definition) element() {}
func (*Usage) element()      {}
func (*Classifier) element() {}
func (*Feature) element()    {}
func (*Import) element()     {}
func (*Alias) element()      {}
func (*Comment) element()    {}
