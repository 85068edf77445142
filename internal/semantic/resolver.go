// # internal/semantic/resolver.go
package semantic

import (
	"sort"
	"strings"
)

// Resolver resolves qualified names and import paths against a symbol
// table. It holds no state beyond the table reference.
type Resolver struct {
	table *SymbolTable
}

func NewResolver(table *SymbolTable) *Resolver {
	return &Resolver{table: table}
}

// splitQualified splits name on "::" and rejects malformed spellings:
// empty input, leading or trailing separators, and empty segments.
func splitQualified(name string) ([]string, bool) {
	if name == "" {
		return nil, false
	}
	parts := strings.Split(name, "::")
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	return parts, true
}

// Resolve looks up a possibly-qualified name. A simple name uses the
// table's scope-chain lookup; a qualified name resolves segment by
// segment, each segment scoped strictly under the previous one.
// Malformed names resolve to nothing.
func (r *Resolver) Resolve(name string) Symbol {
	parts, ok := splitQualified(name)
	if !ok {
		return nil
	}
	if len(parts) == 1 {
		return r.table.Lookup(parts[0])
	}

	cur := r.table.Lookup(parts[0])
	if cur == nil {
		return nil
	}
	for _, part := range parts[1:] {
		if !canContainMembers(cur) {
			return nil
		}
		next := r.table.LookupQualified(cur.QualifiedName() + "::" + part)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// canContainMembers reports whether sym is a namespace-like symbol whose
// qualified name can prefix further segments.
func canContainMembers(sym Symbol) bool {
	switch sym.(type) {
	case *PackageSymbol, *ClassifierSymbol, *DefinitionSymbol:
		return true
	}
	return false
}

// ResolveImport expands an import path to the qualified names it brings
// into scope. Three spellings are supported: an exact path, a namespace
// wildcard `A::B::*` expanding to direct members, and a bare `*`
// expanding to every root-scope symbol. Results are sorted.
func (r *Resolver) ResolveImport(path string) []string {
	switch {
	case path == "*":
		var names []string
		for _, sym := range r.table.Scope(RootScopeID).Symbols() {
			names = append(names, sym.QualifiedName())
		}
		sort.Strings(names)
		return names

	case strings.HasSuffix(path, "::*"):
		prefix := strings.TrimSuffix(path, "::*")
		if _, ok := splitQualified(prefix); !ok {
			return nil
		}
		return r.directMembers(prefix)

	default:
		if _, ok := splitQualified(path); !ok {
			return nil
		}
		if r.table.LookupQualified(path) == nil {
			return nil
		}
		return []string{path}
	}
}

// directMembers returns the qualified names one level below namespace,
// sorted.
func (r *Resolver) directMembers(namespace string) []string {
	prefix := namespace + "::"
	var names []string
	for _, sym := range r.table.AllSymbols() {
		qn := sym.QualifiedName()
		if strings.HasPrefix(qn, prefix) && !strings.Contains(qn[len(prefix):], "::") {
			names = append(names, qn)
		}
	}
	sort.Strings(names)
	return names
}
