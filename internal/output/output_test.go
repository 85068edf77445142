// # internal/output/output_test.go
package output

import (
	"strings"
	"testing"

	"syskb/internal/parser"
	"syskb/internal/workspace"
)

func buildWorkspace(t *testing.T, files map[string]string) *workspace.Workspace {
	t.Helper()
	ws := workspace.New()
	for path, src := range files {
		f, errs := parser.Parse(path, src)
		if len(errs) > 0 {
			t.Fatalf("parse %s: %v", path, errs[0])
		}
		ws.AddFile(path, f)
	}
	ws.PopulateAll()
	return ws
}

func TestDOTGenerator(t *testing.T) {
	ws := buildWorkspace(t, map[string]string{
		"model.sysml": `package Vehicles {
	part def Vehicle;
	part def Car :> Vehicle;
	part def A :> B;
	part def B :> A;
	part def Ghost :> Phantom;
}`,
	})

	gen := NewDOTGenerator(ws.SymbolTable(), ws.RelationshipGraph())
	dot, err := gen.Generate()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(dot, "digraph model") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(dot, `"Vehicles::Car" -> "Vehicles::Vehicle"`) {
		t.Error("DOT output missing specialization edge")
	}
	if !strings.Contains(dot, "CYCLE") {
		t.Error("DOT output missing CYCLE label")
	}
	if !strings.Contains(dot, `"Phantom"`) {
		t.Error("DOT output missing undefined reference node")
	}
}

func TestTSVGenerator(t *testing.T) {
	ws := buildWorkspace(t, map[string]string{
		"base.sysml": `package Base {
	part def Vehicle;
}`,
		"app.sysml": `package App {
	import Base::Vehicle;
	part def Car :> Vehicle;
}`,
	})

	gen := NewTSVGenerator(ws.SymbolTable(), ws.RelationshipGraph(), ws.DependencyGraph())

	tsv, err := gen.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(tsv, "Kind\tSource\tTarget\n") {
		t.Errorf("unexpected relationship header: %s", tsv)
	}
	if !strings.Contains(tsv, "specialization\tApp::Car\tBase::Vehicle") {
		t.Errorf("missing specialization row: %s", tsv)
	}

	depsTSV, err := gen.GenerateDependencies()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(depsTSV, "app.sysml\tbase.sysml") {
		t.Errorf("missing dependency row: %s", depsTSV)
	}
}

func TestTSVGenerator_UnresolvedImports(t *testing.T) {
	ws := buildWorkspace(t, map[string]string{
		"app.sysml": `package App {
	import Missing::Thing;
}`,
	})

	rows := ws.UnresolvedImports()
	if len(rows) != 1 {
		t.Fatalf("expected 1 unresolved import, got %d", len(rows))
	}

	gen := NewTSVGenerator(ws.SymbolTable(), ws.RelationshipGraph(), ws.DependencyGraph())
	tsv, err := gen.GenerateUnresolvedImports(rows)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(tsv), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines in TSV, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "unresolved_import\tapp.sysml\tMissing::Thing") {
		t.Errorf("unexpected TSV line: %s", lines[1])
	}
}

func TestPlantUMLGenerator(t *testing.T) {
	ws := buildWorkspace(t, map[string]string{
		"model.sysml": `package Vehicles {
	part def Vehicle;
	part def Car :> Vehicle;
	part engine : Engine;
}`,
	})

	gen := NewPlantUMLGenerator(ws.SymbolTable(), ws.RelationshipGraph())
	uml, err := gen.Generate()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(uml, "@startuml\n") || !strings.Contains(uml, "@enduml") {
		t.Error("PlantUML output missing envelope")
	}
	if !strings.Contains(uml, `package "Vehicles"`) {
		t.Error("PlantUML output missing package block")
	}
	if !strings.Contains(uml, ": specialization") {
		t.Error("PlantUML output missing specialization edge")
	}
	if !strings.Contains(uml, "#DDDDDD") {
		t.Error("PlantUML output missing undefined reference component")
	}
}
