// # internal/semantic/lookup.go
package semantic

import "strings"

// Lookup resolves name starting from the current scope, walking the
// scope chain toward the root. At each scope local symbols are checked
// before that scope's imports. Aliases are chased to their targets; an
// alias cycle resolves to nothing.
func (t *SymbolTable) Lookup(name string) Symbol {
	return t.lookupFrom(t.current, name, true, nil)
}

// LookupFromScope resolves name starting from the given scope. Aliases
// are returned as-is.
func (t *SymbolTable) LookupFromScope(name string, scopeID int) Symbol {
	if scopeID < 0 || scopeID >= len(t.scopes) {
		return nil
	}
	return t.lookupFrom(scopeID, name, false, nil)
}

// LookupGlobal returns the first symbol bound under name in any scope,
// scanning scopes in arena order.
func (t *SymbolTable) LookupGlobal(name string) Symbol {
	for _, scope := range t.scopes {
		if sym, ok := scope.Symbol(name); ok {
			return sym
		}
	}
	return nil
}

// LookupQualified returns the symbol whose qualified name matches
// exactly, scanning scopes in arena order.
func (t *SymbolTable) LookupQualified(qualifiedName string) Symbol {
	for _, scope := range t.scopes {
		for _, sym := range scope.Symbols() {
			if sym.QualifiedName() == qualifiedName {
				return sym
			}
		}
	}
	return nil
}

func (t *SymbolTable) lookupFrom(scopeID int, name string, resolveAliases bool, guard map[string]bool) Symbol {
	for id := scopeID; id >= 0; id = t.scopes[id].Parent {
		scope := t.scopes[id]
		if sym, ok := scope.Symbol(name); ok {
			if alias, isAlias := sym.(*AliasSymbol); isAlias && resolveAliases {
				return t.chaseAlias(alias, guard)
			}
			return sym
		}
		if sym := t.lookupInImports(scope, name, resolveAliases, guard); sym != nil {
			return sym
		}
	}
	return nil
}

// chaseAlias follows alias targets until a non-alias symbol is found.
// Revisiting an alias means the chain is cyclic and resolves to nothing.
func (t *SymbolTable) chaseAlias(alias *AliasSymbol, guard map[string]bool) Symbol {
	if guard == nil {
		guard = make(map[string]bool)
	}
	if guard[alias.QualifiedName()] {
		return nil
	}
	guard[alias.QualifiedName()] = true

	var target Symbol
	if strings.Contains(alias.Target, "::") {
		target = t.LookupQualified(alias.Target)
	} else {
		target = t.lookupFrom(alias.ScopeID(), alias.Target, false, guard)
	}
	if next, isAlias := target.(*AliasSymbol); isAlias {
		return t.chaseAlias(next, guard)
	}
	return target
}

func (t *SymbolTable) lookupInImports(scope *Scope, name string, resolveAliases bool, guard map[string]bool) Symbol {
	for _, imp := range scope.imports {
		var sym Symbol
		switch {
		case imp.IsRecursive:
			sym = t.lookupRecursiveImport(imp.Path, name)
		case imp.IsNamespace:
			sym = t.LookupQualified(imp.Path + "::" + name)
		default:
			sym = t.lookupMemberImport(imp.Path, name)
		}
		if sym == nil {
			continue
		}
		if alias, isAlias := sym.(*AliasSymbol); isAlias && resolveAliases {
			return t.chaseAlias(alias, guard)
		}
		return sym
	}
	return nil
}

// lookupMemberImport matches `import A::B::C;` when name is C, and
// `import A;` when name is A.
func (t *SymbolTable) lookupMemberImport(path, name string) Symbol {
	if path == name || strings.HasSuffix(path, "::"+name) {
		return t.LookupQualified(path)
	}
	return nil
}

// lookupRecursiveImport matches any symbol named name anywhere below the
// imported namespace, as well as the namespace itself.
func (t *SymbolTable) lookupRecursiveImport(path, name string) Symbol {
	if path == name || strings.HasSuffix(path, "::"+name) {
		if sym := t.LookupQualified(path); sym != nil {
			return sym
		}
	}
	prefix := path + "::"
	for _, scope := range t.scopes {
		for _, sym := range scope.Symbols() {
			if sym.Name() == name && strings.HasPrefix(sym.QualifiedName(), prefix) {
				return sym
			}
		}
	}
	return nil
}
