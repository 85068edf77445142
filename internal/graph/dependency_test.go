// # internal/graph/dependency_test.go
package graph

import (
	"reflect"
	"testing"
)

func TestDependencyBothDirections(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("app.sysml", "base.sysml")
	g.AddDependency("app.sysml", "util.sysml")

	if got := g.Dependencies("app.sysml"); !reflect.DeepEqual(got, []string{"base.sysml", "util.sysml"}) {
		t.Fatalf("Dependencies = %v", got)
	}
	if got := g.Dependents("base.sysml"); !reflect.DeepEqual(got, []string{"app.sysml"}) {
		t.Fatalf("Dependents = %v", got)
	}
}

func TestAllAffectedTransitive(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("mid.sysml", "base.sysml")
	g.AddDependency("top.sysml", "mid.sysml")
	g.AddDependency("side.sysml", "base.sysml")

	got := g.AllAffected("base.sysml")
	want := []string{"mid.sysml", "side.sysml", "top.sysml"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AllAffected = %v, want %v", got, want)
	}
}

func TestAllAffectedCycleVisitsOnce(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("a.sysml", "b.sysml")
	g.AddDependency("b.sysml", "a.sysml")
	g.AddDependency("c.sysml", "a.sysml")

	got := g.AllAffected("b.sysml")
	want := []string{"a.sysml", "b.sysml", "c.sysml"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AllAffected = %v, want %v", got, want)
	}
}

func TestHasCircularDependency(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("a.sysml", "b.sysml")
	g.AddDependency("b.sysml", "c.sysml")

	if g.HasCircularDependency("a.sysml") {
		t.Fatal("acyclic chain reported as cycle")
	}

	g.AddDependency("c.sysml", "a.sysml")
	for _, f := range []string{"a.sysml", "b.sysml", "c.sysml"} {
		if !g.HasCircularDependency(f) {
			t.Fatalf("%s should be on the cycle", f)
		}
	}
}

func TestSelfImportIsCircular(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("solo.sysml", "solo.sysml")

	if !g.HasCircularDependency("solo.sysml") {
		t.Fatal("self import must count as circular")
	}
	if got := g.AllAffected("solo.sysml"); !reflect.DeepEqual(got, []string{"solo.sysml"}) {
		t.Fatalf("AllAffected = %v", got)
	}
}

func TestRemoveFile(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("app.sysml", "base.sysml")
	g.AddDependency("other.sysml", "app.sysml")

	g.RemoveFile("app.sysml")

	if got := g.Dependents("base.sysml"); got != nil {
		t.Fatalf("stale dependents: %v", got)
	}
	if got := g.Dependencies("other.sysml"); got != nil {
		t.Fatalf("stale dependencies: %v", got)
	}
	if got := g.EdgeCount(); got != 0 {
		t.Fatalf("EdgeCount = %d, want 0", got)
	}
}

func TestDuplicateEdgeCountedOnce(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependency("a.sysml", "b.sysml")
	g.AddDependency("a.sysml", "b.sysml")

	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount = %d, want 1", got)
	}
}
