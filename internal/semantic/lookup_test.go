// # internal/semantic/lookup_test.go
package semantic

import (
	"testing"
)

// buildLibrary populates a table with Lib::Engine and Lib::Frame under a
// Lib package scope and returns the table positioned at the root.
func buildLibrary(t *testing.T) *SymbolTable {
	t.Helper()
	table := NewSymbolTable()
	table.SetCurrentFile("lib.sysml")
	pkg := NewPackageSymbol("Lib", "Lib", table.CurrentScopeID(), "lib.sysml", span(0, 0))
	if !table.Insert("Lib", pkg) {
		t.Fatal("insert Lib failed")
	}
	table.EnterScope()
	def(t, table, "Engine", "Lib::Engine")
	def(t, table, "Frame", "Lib::Frame")
	table.ExitScope()
	return table
}

func TestMemberImport(t *testing.T) {
	table := buildLibrary(t)
	table.SetCurrentFile("car.sysml")
	table.EnterScope()
	table.AddImport("Lib::Engine", false, false, span(0, 0))

	if got := table.Lookup("Engine"); got == nil || got.QualifiedName() != "Lib::Engine" {
		t.Fatalf("member import lookup = %v", got)
	}
	if table.Lookup("Frame") != nil {
		t.Fatal("member import leaked a sibling symbol")
	}
}

func TestMemberImportOfNamespaceItself(t *testing.T) {
	table := buildLibrary(t)
	table.SetCurrentFile("car.sysml")
	table.EnterScope()
	table.AddImport("Lib", false, false, nil)

	if got := table.Lookup("Lib"); got == nil || got.QualifiedName() != "Lib" {
		t.Fatalf("importing a root package by name = %v", got)
	}
}

func TestNamespaceImport(t *testing.T) {
	table := buildLibrary(t)
	table.SetCurrentFile("car.sysml")
	table.EnterScope()
	table.AddImport("Lib", true, false, nil)

	if got := table.Lookup("Engine"); got == nil || got.QualifiedName() != "Lib::Engine" {
		t.Fatalf("namespace import lookup = %v", got)
	}
	if got := table.Lookup("Frame"); got == nil {
		t.Fatal("namespace import must expose every direct member")
	}
}

func TestRecursiveImport(t *testing.T) {
	table := NewSymbolTable()
	table.SetCurrentFile("lib.sysml")
	table.Insert("Lib", NewPackageSymbol("Lib", "Lib", RootScopeID, "lib.sysml", nil))
	table.EnterScope()
	table.Insert("Inner", NewPackageSymbol("Inner", "Lib::Inner", table.CurrentScopeID(), "lib.sysml", nil))
	table.EnterScope()
	def(t, table, "Deep", "Lib::Inner::Deep")
	table.ExitScope()
	table.ExitScope()

	table.SetCurrentFile("car.sysml")
	table.EnterScope()
	table.AddImport("Lib", false, true, nil)

	if got := table.Lookup("Deep"); got == nil || got.QualifiedName() != "Lib::Inner::Deep" {
		t.Fatalf("recursive import lookup = %v", got)
	}
	if got := table.Lookup("Lib"); got == nil {
		t.Fatal("recursive import must expose the namespace itself")
	}
}

func TestImportsCheckedAfterLocals(t *testing.T) {
	table := buildLibrary(t)
	table.SetCurrentFile("car.sysml")
	table.EnterScope()
	table.AddImport("Lib", true, false, nil)
	local := def(t, table, "Engine", "Car::Engine")

	if got := table.Lookup("Engine"); got != Symbol(local) {
		t.Fatalf("local symbol must shadow imports, got %q", got.QualifiedName())
	}
}

func TestAliasResolution(t *testing.T) {
	table := buildLibrary(t)
	table.SetCurrentFile("car.sysml")
	table.Insert("E", NewAliasSymbol("E", "E", "Lib::Engine", RootScopeID, "car.sysml", span(2, 0)))

	got := table.Lookup("E")
	if got == nil || got.QualifiedName() != "Lib::Engine" {
		t.Fatalf("alias resolved to %v", got)
	}
	if _, isAlias := got.(*AliasSymbol); isAlias {
		t.Fatal("Lookup returned the alias itself")
	}
}

func TestAliasChain(t *testing.T) {
	table := buildLibrary(t)
	table.SetCurrentFile("car.sysml")
	table.Insert("E", NewAliasSymbol("E", "E", "Lib::Engine", RootScopeID, "car.sysml", nil))
	table.Insert("Motor", NewAliasSymbol("Motor", "Motor", "E", RootScopeID, "car.sysml", nil))

	got := table.Lookup("Motor")
	if got == nil || got.QualifiedName() != "Lib::Engine" {
		t.Fatalf("alias chain resolved to %v", got)
	}
}

func TestAliasCycleResolvesToNothing(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("A", NewAliasSymbol("A", "A", "B", RootScopeID, "", nil))
	table.Insert("B", NewAliasSymbol("B", "B", "A", RootScopeID, "", nil))

	if got := table.Lookup("A"); got != nil {
		t.Fatalf("cyclic alias resolved to %v", got)
	}
	if got := table.Lookup("B"); got != nil {
		t.Fatalf("cyclic alias resolved to %v", got)
	}
}

func TestSelfAliasResolvesToNothing(t *testing.T) {
	table := NewSymbolTable()
	table.Insert("Loop", NewAliasSymbol("Loop", "Loop", "Loop", RootScopeID, "", nil))

	if got := table.Lookup("Loop"); got != nil {
		t.Fatalf("self alias resolved to %v", got)
	}
}

func TestLookupFromScopeKeepsAlias(t *testing.T) {
	table := buildLibrary(t)
	table.Insert("E", NewAliasSymbol("E", "E", "Lib::Engine", RootScopeID, "", nil))

	got := table.LookupFromScope("E", RootScopeID)
	if _, isAlias := got.(*AliasSymbol); !isAlias {
		t.Fatalf("LookupFromScope resolved the alias: %v", got)
	}
}
