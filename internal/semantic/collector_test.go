// # internal/semantic/collector_test.go
package semantic

import (
	"testing"

	"syskb/internal/graph"
)

func TestCollectRelationshipReferences(t *testing.T) {
	table := NewSymbolTable()
	table.SetCurrentFile("m.sysml")
	def(t, table, "Vehicle", "Vehicle")
	car := NewDefinitionSymbol("Car", "Car", "part", false, RootScopeID, "m.sysml", span(4, 0))
	table.Insert("Car", car)

	g := graph.NewRelationshipGraph()
	g.AddOneToMany(graph.Specialization, "Car", "Vehicle")

	n := NewReferenceCollector(table, g).Collect()
	if n != 1 {
		t.Fatalf("Collect = %d, want 1", n)
	}
	refs := table.Lookup("Vehicle").References()
	if len(refs) != 1 {
		t.Fatalf("references = %+v", refs)
	}
	if refs[0].File != "m.sysml" || refs[0].Span.Start.Line != 4 {
		t.Fatalf("reference location = %+v, want Car's declaration site", refs[0])
	}
}

func TestCollectResolvesSimpleNameTargets(t *testing.T) {
	table := NewSymbolTable()
	table.SetCurrentFile("lib.sysml")
	table.Insert("Lib", NewPackageSymbol("Lib", "Lib", RootScopeID, "lib.sysml", nil))
	table.EnterScope()
	def(t, table, "Engine", "Lib::Engine")
	table.ExitScope()
	def(t, table, "myEngine", "myEngine")

	g := graph.NewRelationshipGraph()
	// Reference text as written in source, not qualified.
	g.AddOneToOne(graph.Typing, "myEngine", "Engine")

	NewReferenceCollector(table, g).Collect()
	refs := table.LookupQualified("Lib::Engine").References()
	if len(refs) != 1 {
		t.Fatalf("simple-name target not resolved globally: %+v", refs)
	}
}

func TestCollectSkipsUnresolvable(t *testing.T) {
	table := NewSymbolTable()
	table.SetCurrentFile("m.sysml")
	def(t, table, "Car", "Car")

	g := graph.NewRelationshipGraph()
	g.AddOneToMany(graph.Specialization, "Car", "Ghost")
	g.AddOneToMany(graph.Specialization, "Phantom", "Car")

	if n := NewReferenceCollector(table, g).Collect(); n != 0 {
		t.Fatalf("Collect = %d, want 0", n)
	}
	if len(table.Lookup("Car").References()) != 0 {
		t.Fatal("reference recorded from unresolvable source")
	}
}

func TestCollectImportReferences(t *testing.T) {
	table := NewSymbolTable()
	table.SetCurrentFile("lib.sysml")
	table.Insert("Lib", NewPackageSymbol("Lib", "Lib", RootScopeID, "lib.sysml", nil))
	table.EnterScope()
	def(t, table, "Engine", "Lib::Engine")
	table.ExitScope()

	table.SetCurrentFile("car.sysml")
	table.EnterScope()
	table.AddImport("Lib::Engine", false, false, span(0, 7))
	table.AddImport("Lib", true, false, span(1, 7)) // wildcard, no reference
	table.ExitScope()

	n := NewReferenceCollector(table, graph.NewRelationshipGraph()).Collect()
	if n != 1 {
		t.Fatalf("Collect = %d, want 1", n)
	}
	refs := table.LookupQualified("Lib::Engine").References()
	if len(refs) != 1 || refs[0].File != "car.sysml" {
		t.Fatalf("import reference = %+v", refs)
	}
}
