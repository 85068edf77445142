// # internal/semantic/table.go
package semantic

import (
	"syskb/internal/shared/events"
	"syskb/internal/syntax"
)

// SymbolTable is an arena of scopes holding every symbol in the
// workspace. Scope 0 is the root scope; ids grow monotonically and are
// never reused. The table is not safe for concurrent use.
type SymbolTable struct {
	scopes      []*Scope
	current     int
	currentFile string
	events      events.Emitter[TableEvent]
}

func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{current: RootScopeID}
	t.scopes = append(t.scopes, newScope(RootScopeID, -1))
	return t
}

// Subscribe registers a handler for table notifications. Handlers run
// synchronously after each mutation.
func (t *SymbolTable) Subscribe(handler func(TableEvent)) {
	t.events.Subscribe(handler)
}

// EnterScope appends a child of the current scope and makes it current.
// It returns the new scope's id.
func (t *SymbolTable) EnterScope() int {
	id := len(t.scopes)
	scope := newScope(id, t.current)
	t.scopes = append(t.scopes, scope)
	t.scopes[t.current].Children = append(t.scopes[t.current].Children, id)
	t.current = id
	return id
}

// ExitScope moves back to the parent scope. Exiting the root scope is a
// no-op.
func (t *SymbolTable) ExitScope() {
	if parent := t.scopes[t.current].Parent; parent >= 0 {
		t.current = parent
	}
}

// CurrentScopeID returns the id of the scope insertions go into.
func (t *SymbolTable) CurrentScopeID() int {
	return t.current
}

// ScopeCount returns the number of scopes in the arena.
func (t *SymbolTable) ScopeCount() int {
	return len(t.scopes)
}

// Scope returns the scope with the given id, or nil when out of range.
func (t *SymbolTable) Scope(id int) *Scope {
	if id < 0 || id >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// SetCurrentFile records the file subsequent insertions belong to and
// resets the current scope to the root.
func (t *SymbolTable) SetCurrentFile(path string) {
	t.currentFile = path
	t.current = RootScopeID
	t.events.Emit(TableEvent{Kind: FileChanged, Path: path})
}

// CurrentFile returns the file set by SetCurrentFile.
func (t *SymbolTable) CurrentFile() string {
	return t.currentFile
}

// Insert binds sym under name in the current scope. Inserting a name
// already bound in that scope fails and leaves the first binding intact.
func (t *SymbolTable) Insert(name string, sym Symbol) bool {
	if !t.scopes[t.current].insert(name, sym) {
		return false
	}
	t.events.Emit(TableEvent{
		Kind: SymbolInserted,
		Name: sym.QualifiedName(),
		Path: t.currentFile,
	})
	return true
}

// AddImport attaches an import statement to the current scope.
func (t *SymbolTable) AddImport(path string, isNamespace, isRecursive bool, span *syntax.Span) {
	t.scopes[t.current].addImport(Import{
		Path:        path,
		IsNamespace: isNamespace,
		IsRecursive: isRecursive,
		File:        t.currentFile,
		Span:        span,
	})
	t.events.Emit(TableEvent{Kind: ImportAdded, Name: path, Path: t.currentFile})
}

// AllSymbols returns every symbol in the table, walking scopes in arena
// order and each scope in insertion order.
func (t *SymbolTable) AllSymbols() []Symbol {
	var out []Symbol
	for _, scope := range t.scopes {
		out = append(out, scope.Symbols()...)
	}
	return out
}

// SymbolCount returns the total number of symbols across all scopes.
func (t *SymbolTable) SymbolCount() int {
	n := 0
	for _, scope := range t.scopes {
		n += scope.SymbolCount()
	}
	return n
}

// QualifiedNamesFromFile returns the qualified names of every symbol
// that originated in path.
func (t *SymbolTable) QualifiedNamesFromFile(path string) []string {
	var names []string
	for _, scope := range t.scopes {
		for _, sym := range scope.Symbols() {
			if sym.SourceFile() == path {
				names = append(names, sym.QualifiedName())
			}
		}
	}
	return names
}

// RemoveSymbolsFromFile removes every symbol and import that originated
// in path. Scopes themselves are retained.
func (t *SymbolTable) RemoveSymbolsFromFile(path string) int {
	removed := 0
	for _, scope := range t.scopes {
		var names []string
		for _, sym := range scope.Symbols() {
			if sym.SourceFile() == path {
				names = append(names, sym.Name())
			}
		}
		for _, name := range names {
			scope.remove(name)
			removed++
		}
		if len(scope.imports) > 0 {
			kept := scope.imports[:0]
			for _, imp := range scope.imports {
				if imp.File != path {
					kept = append(kept, imp)
				}
			}
			scope.imports = kept
		}
	}
	return removed
}

// AddReferences appends refs to the symbol with the given qualified name,
// if it exists.
func (t *SymbolTable) AddReferences(qualifiedName string, refs []Reference) bool {
	sym := t.LookupQualified(qualifiedName)
	if sym == nil {
		return false
	}
	for _, ref := range refs {
		sym.AddReference(ref)
	}
	return true
}
