// # internal/adapter/adapter_test.go
package adapter

import (
	"reflect"
	"testing"

	"syskb/internal/graph"
	"syskb/internal/parser"
	"syskb/internal/semantic"
	"syskb/internal/syntax"
)

type fixture struct {
	table *semantic.SymbolTable
	graph *graph.RelationshipGraph
}

func populate(t *testing.T, src string) (*fixture, []semantic.SemanticError) {
	t.Helper()
	file, perrs := parser.Parse("test.sysml", src)
	if len(perrs) > 0 {
		t.Fatalf("parse errors: %v", perrs)
	}
	f := &fixture{table: semantic.NewSymbolTable(), graph: graph.NewRelationshipGraph()}
	f.table.SetCurrentFile("test.sysml")
	errs := NewPopulator(f.table, f.graph).Populate(file)
	return f, errs
}

func mustPopulate(t *testing.T, src string) *fixture {
	t.Helper()
	f, errs := populate(t, src)
	if len(errs) > 0 {
		t.Fatalf("populate errors: %v", errs)
	}
	return f
}

func TestPopulateHierarchy(t *testing.T) {
	f := mustPopulate(t, `
package Vehicles {
	part def Vehicle;
	part def Car :> Vehicle {
		part engine : Engine;
	}
}`)
	pkg := f.table.LookupQualified("Vehicles")
	if _, ok := pkg.(*semantic.PackageSymbol); !ok {
		t.Fatalf("Vehicles = %T", pkg)
	}
	car := f.table.LookupQualified("Vehicles::Car").(*semantic.DefinitionSymbol)
	if car.Kind != "Part" {
		t.Fatalf("car kind = %q", car.Kind)
	}
	engine := f.table.LookupQualified("Vehicles::Car::engine").(*semantic.UsageSymbol)
	if engine.UsageType != "Engine" {
		t.Fatalf("engine type = %q", engine.UsageType)
	}
	// Each nested declaration gets its own scope.
	if car.ScopeID() == engine.ScopeID() || pkg.ScopeID() != semantic.RootScopeID {
		t.Fatalf("scopes: pkg=%d car=%d engine=%d", pkg.ScopeID(), car.ScopeID(), engine.ScopeID())
	}
}

func TestPopulateDeepNesting(t *testing.T) {
	f := mustPopulate(t, `
package L1 {
	package L2 {
		package L3 {
			part def DeepPart;
		}
	}
}`)
	if f.table.LookupQualified("L1::L2::L3::DeepPart") == nil {
		t.Fatal("deep qualified name missing")
	}
}

func TestPopulateEdges(t *testing.T) {
	f := mustPopulate(t, `
part def Vehicle;
part def Car :> Vehicle;
part myCar : Car;
part rearWheel :>> wheel;
part spare :> wheel;
ref part driver ::> person;
part axle crosses frame;
`)
	if got := f.graph.OneToMany(graph.Specialization, "Car"); !reflect.DeepEqual(got, []string{"Vehicle"}) {
		t.Fatalf("specialization = %v", got)
	}
	if target, ok := f.graph.OneToOne(graph.Typing, "myCar"); !ok || target != "Car" {
		t.Fatalf("typing = %q", target)
	}
	if got := f.graph.OneToMany(graph.Redefinition, "rearWheel"); !reflect.DeepEqual(got, []string{"wheel"}) {
		t.Fatalf("redefinition = %v", got)
	}
	if got := f.graph.OneToMany(graph.Subsetting, "spare"); !reflect.DeepEqual(got, []string{"wheel"}) {
		t.Fatalf("subsetting = %v", got)
	}
	if got := f.graph.OneToMany(graph.ReferenceSubsetting, "driver"); !reflect.DeepEqual(got, []string{"person"}) {
		t.Fatalf("reference subsetting = %v", got)
	}
	if got := f.graph.OneToMany(graph.CrossSubsetting, "axle"); !reflect.DeepEqual(got, []string{"frame"}) {
		t.Fatalf("cross subsetting = %v", got)
	}
}

func TestPopulateRelationshipVerbs(t *testing.T) {
	f := mustPopulate(t, `
package Sys {
	part def Controller {
		satisfy SafetyReq;
		perform action monitor : Monitor;
		exhibit idle;
		include use case Checkout;
	}
}`)
	src := "Sys::Controller"
	cases := []struct {
		kind   string
		target string
	}{
		{graph.Satisfy, "SafetyReq"},
		{graph.Perform, "Monitor"},
		{graph.Exhibit, "idle"},
		{graph.Include, "Checkout"},
	}
	for _, c := range cases {
		if got := f.graph.OneToMany(c.kind, src); !reflect.DeepEqual(got, []string{c.target}) {
			t.Fatalf("%s edges = %v, want [%s]", c.kind, got, c.target)
		}
	}
	// The named perform usage is also a symbol of its own.
	monitor := f.table.LookupQualified("Sys::Controller::monitor")
	if monitor == nil {
		t.Fatal("named relationship usage not bound")
	}
}

func TestPopulateKindCollapsing(t *testing.T) {
	f := mustPopulate(t, `
concern def Safety;
case def Nominal;
analysis case def Load;
use case def Checkout;
verification case def BrakeTest;
`)
	for _, name := range []string{"Safety", "Nominal", "Load", "Checkout"} {
		sym := f.table.LookupQualified(name).(*semantic.DefinitionSymbol)
		if sym.Kind != "UseCase" {
			t.Fatalf("%s kind = %q, want UseCase", name, sym.Kind)
		}
	}
	brake := f.table.LookupQualified("BrakeTest").(*semantic.DefinitionSymbol)
	if brake.Kind != "VerificationCase" {
		t.Fatalf("BrakeTest kind = %q, want VerificationCase", brake.Kind)
	}
}

func TestPopulateDuplicatesAccumulate(t *testing.T) {
	f, errs := populate(t, `
part def Car;
part def Car;
part def Car;
part def Other;
`)
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2", len(errs))
	}
	for _, err := range errs {
		dup, ok := err.(*semantic.DuplicateDefinitionError)
		if !ok || dup.Name != "Car" {
			t.Fatalf("unexpected error %v", err)
		}
	}
	// First binding wins, later declarations still processed.
	if f.table.LookupQualified("Other") == nil {
		t.Fatal("population aborted after duplicate")
	}
	if f.table.SymbolCount() != 2 {
		t.Fatalf("SymbolCount = %d, want 2", f.table.SymbolCount())
	}
}

func TestPopulateImportAndAlias(t *testing.T) {
	f := mustPopulate(t, `
package App {
	import Lib::Engine;
	import Lib::Parts::*;
	alias E for Lib::Engine;
}`)
	app := f.table.LookupQualified("App")
	imports := f.table.Scope(app.ScopeID() + 1).Imports()
	if len(imports) != 2 {
		t.Fatalf("imports = %+v", imports)
	}
	if imports[0].Path != "Lib::Engine" || imports[0].IsNamespace {
		t.Fatalf("member import = %+v", imports[0])
	}
	if imports[1].Path != "Lib::Parts" || !imports[1].IsNamespace {
		t.Fatalf("namespace import = %+v", imports[1])
	}
	alias := f.table.LookupQualified("App::E").(*semantic.AliasSymbol)
	if alias.Target != "Lib::Engine" {
		t.Fatalf("alias target = %q", alias.Target)
	}
}

func TestPopulateClassifierAndFeature(t *testing.T) {
	f := mustPopulate(t, `
abstract classifier Shape :> Geometry {
	feature area : Real;
}`)
	shape := f.table.LookupQualified("Shape").(*semantic.ClassifierSymbol)
	if !shape.IsAbstract || shape.Kind != "classifier" {
		t.Fatalf("shape = %+v", shape)
	}
	if got := f.graph.OneToMany(graph.Specialization, "Shape"); !reflect.DeepEqual(got, []string{"Geometry"}) {
		t.Fatalf("specialization = %v", got)
	}
	area := f.table.LookupQualified("Shape::area").(*semantic.FeatureSymbol)
	if area.FeatureType != "Real" {
		t.Fatalf("area = %+v", area)
	}
	if target, ok := f.graph.OneToOne(graph.Typing, "Shape::area"); !ok || target != "Real" {
		t.Fatalf("feature typing = %q", target)
	}
}

func TestPopulateAnonymousPackage(t *testing.T) {
	file := &syntax.File{Elements: []syntax.Element{
		&syntax.Package{Elements: []syntax.Element{
			&syntax.Definition{Kind: syntax.DefPart, Name: "Loose"},
		}},
		&syntax.Comment{Text: "ignored"},
	}}
	table := semantic.NewSymbolTable()
	g := graph.NewRelationshipGraph()
	errs := NewPopulator(table, g).Populate(file)
	if len(errs) != 0 {
		t.Fatalf("errors = %v", errs)
	}
	// Anonymous packages neither bind a symbol nor qualify members.
	if got := table.LookupQualified("Loose"); got == nil {
		t.Fatal("member of anonymous package missing")
	}
	if table.SymbolCount() != 1 {
		t.Fatalf("SymbolCount = %d, want 1", table.SymbolCount())
	}
}

func TestPopulateNamespaceFile(t *testing.T) {
	f := mustPopulate(t, `
namespace Root {
	part def Thing;
}`)
	if f.table.LookupQualified("Root::Thing") == nil {
		t.Fatal("namespace-qualified symbol missing")
	}
}
