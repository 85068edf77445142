// # internal/output/output.go
package output

import (
	"sort"

	"syskb/internal/graph"
	"syskb/internal/semantic"
)

// allEdges flattens the relationship graph, normalizing each target to
// its declaring symbol's qualified name when one exists. Targets are
// recorded as written in source, so a simple-name target may need a
// global lookup to land on the declared element.
func allEdges(relations *graph.RelationshipGraph, table *semantic.SymbolTable) []graph.Edge {
	var edges []graph.Edge
	for _, kind := range relations.Kinds() {
		for _, e := range relations.Edges(kind) {
			e.Target = normalizeName(table, e.Target)
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Kind != edges[j].Kind {
			return edges[i].Kind < edges[j].Kind
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

func normalizeName(table *semantic.SymbolTable, name string) string {
	if sym := table.LookupQualified(name); sym != nil {
		return sym.QualifiedName()
	}
	if sym := table.LookupGlobal(name); sym != nil {
		return sym.QualifiedName()
	}
	return name
}

// cycleEdgeSet marks every edge that sits on a cycle of its own kind.
func cycleEdgeSet(edges []graph.Edge) map[string]map[string]bool {
	adj := make(map[string]map[string][]string)
	for _, e := range edges {
		if adj[e.Kind] == nil {
			adj[e.Kind] = make(map[string][]string)
		}
		adj[e.Kind][e.Source] = append(adj[e.Kind][e.Source], e.Target)
	}

	reaches := func(kind, from, to string) bool {
		seen := map[string]bool{}
		stack := []string{from}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if cur == to {
				return true
			}
			if seen[cur] {
				continue
			}
			seen[cur] = true
			stack = append(stack, adj[kind][cur]...)
		}
		return false
	}

	set := make(map[string]map[string]bool)
	for _, e := range edges {
		if !reaches(e.Kind, e.Target, e.Source) {
			continue
		}
		if set[e.Source] == nil {
			set[e.Source] = make(map[string]bool)
		}
		set[e.Source][e.Target] = true
	}
	return set
}
