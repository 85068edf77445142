// # internal/graph/dependency.go
package graph

import "sort"

// DependencyGraph tracks import dependencies between source files. Both
// directions are indexed so that invalidation can walk dependents without
// scanning the whole graph.
type DependencyGraph struct {
	dependencies map[string]map[string]bool // file -> files it imports from
	dependents   map[string]map[string]bool // file -> files importing from it
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		dependencies: make(map[string]map[string]bool),
		dependents:   make(map[string]map[string]bool),
	}
}

// AddDependency records that from depends on to. Self edges and repeats
// are recorded once; a self edge makes a file its own dependent.
func (g *DependencyGraph) AddDependency(from, to string) {
	if g.dependencies[from] == nil {
		g.dependencies[from] = make(map[string]bool)
	}
	g.dependencies[from][to] = true
	if g.dependents[to] == nil {
		g.dependents[to] = make(map[string]bool)
	}
	g.dependents[to][from] = true
}

// Dependencies returns the files that file directly depends on, sorted.
func (g *DependencyGraph) Dependencies(file string) []string {
	return sortedKeys(g.dependencies[file])
}

// Dependents returns the files that directly depend on file, sorted.
func (g *DependencyGraph) Dependents(file string) []string {
	return sortedKeys(g.dependents[file])
}

// AllAffected returns every file transitively depending on file, sorted.
// file itself is excluded unless a dependency cycle leads back to it.
func (g *DependencyGraph) AllAffected(file string) []string {
	visited := make(map[string]bool)
	queue := g.Dependents(file)
	var affected []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		affected = append(affected, cur)
		queue = append(queue, g.Dependents(cur)...)
	}
	sort.Strings(affected)
	return affected
}

// HasCircularDependency reports whether file sits on a dependency cycle,
// including a self import.
func (g *DependencyGraph) HasCircularDependency(file string) bool {
	visited := make(map[string]bool)
	queue := g.Dependencies(file)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == file {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		queue = append(queue, g.Dependencies(cur)...)
	}
	return false
}

// RemoveFile drops file and every edge touching it.
func (g *DependencyGraph) RemoveFile(file string) {
	for to := range g.dependencies[file] {
		delete(g.dependents[to], file)
		if len(g.dependents[to]) == 0 {
			delete(g.dependents, to)
		}
	}
	delete(g.dependencies, file)
	for from := range g.dependents[file] {
		delete(g.dependencies[from], file)
		if len(g.dependencies[from]) == 0 {
			delete(g.dependencies, from)
		}
	}
	delete(g.dependents, file)
}

// Clear drops every edge.
func (g *DependencyGraph) Clear() {
	g.dependencies = make(map[string]map[string]bool)
	g.dependents = make(map[string]map[string]bool)
}

// EdgeCount returns the number of dependency edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, tos := range g.dependencies {
		n += len(tos)
	}
	return n
}

// Files returns every file that appears on either side of an edge, sorted.
func (g *DependencyGraph) Files() []string {
	set := make(map[string]bool)
	for f := range g.dependencies {
		set[f] = true
	}
	for f := range g.dependents {
		set[f] = true
	}
	return sortedKeys(set)
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
