// # internal/semantic/scope.go
package semantic

import "syskb/internal/syntax"

// RootScopeID is the id of the implicit global scope.
const RootScopeID = 0

// Import is an import statement attached to the scope it was written in.
type Import struct {
	// Path without any wildcard suffix.
	Path string
	// IsNamespace marks `Path::*` imports.
	IsNamespace bool
	// IsRecursive marks `Path::**` imports.
	IsRecursive bool
	File        string
	Span        *syntax.Span
}

// Scope is one node in the scope arena. Scopes are identified by their
// index in the arena and are never reused or removed.
type Scope struct {
	ID       int
	Parent   int // -1 for the root scope
	Children []int
	symbols  map[string]Symbol
	imports  []Import
	order    []string // insertion order of symbol names
}

func newScope(id, parent int) *Scope {
	return &Scope{
		ID:      id,
		Parent:  parent,
		symbols: make(map[string]Symbol),
	}
}

// insert adds sym under name. It fails when name is already bound.
func (s *Scope) insert(name string, sym Symbol) bool {
	if _, exists := s.symbols[name]; exists {
		return false
	}
	s.symbols[name] = sym
	s.order = append(s.order, name)
	return true
}

func (s *Scope) remove(name string) {
	if _, exists := s.symbols[name]; !exists {
		return
	}
	delete(s.symbols, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Symbol returns the symbol bound to name in this scope only.
func (s *Scope) Symbol(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns this scope's symbols in insertion order.
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}

// Imports returns the import statements attached to this scope.
func (s *Scope) Imports() []Import {
	return s.imports
}

func (s *Scope) addImport(imp Import) {
	s.imports = append(s.imports, imp)
}

func (s *Scope) SymbolCount() int {
	return len(s.symbols)
}
