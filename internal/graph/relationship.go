// # internal/graph/relationship.go
package graph

import "sort"

// Relationship kinds tracked by the relationship graph. One-to-one kinds
// allow at most one target per source; one-to-many kinds keep an ordered
// target list.
const (
	Specialization      = "specialization"
	Redefinition        = "redefinition"
	Subsetting          = "subsetting"
	ReferenceSubsetting = "reference_subsetting"
	CrossSubsetting     = "cross_subsetting"
	Typing              = "typing"
	Satisfy             = "satisfy"
	Perform             = "perform"
	Exhibit             = "exhibit"
	Include             = "include"
)

// oneToMany keeps per-source target lists in insertion order, with the
// (source, target) pair recorded at most once.
type oneToMany struct {
	targets map[string][]string
	seen    map[string]map[string]bool
}

func newOneToMany() *oneToMany {
	return &oneToMany{
		targets: make(map[string][]string),
		seen:    make(map[string]map[string]bool),
	}
}

func (g *oneToMany) add(source, target string) {
	if g.seen[source] == nil {
		g.seen[source] = make(map[string]bool)
	}
	if g.seen[source][target] {
		return
	}
	g.seen[source][target] = true
	g.targets[source] = append(g.targets[source], target)
}

func (g *oneToMany) remove(source string) {
	delete(g.targets, source)
	delete(g.seen, source)
}

// RelationshipGraph stores typed, directed edges between elements
// identified by qualified name. Kinds are registered lazily on first use.
type RelationshipGraph struct {
	oneToOne  map[string]map[string]string
	oneToMany map[string]*oneToMany
}

func NewRelationshipGraph() *RelationshipGraph {
	return &RelationshipGraph{
		oneToOne:  make(map[string]map[string]string),
		oneToMany: make(map[string]*oneToMany),
	}
}

// AddOneToOne records the single target of source under kind,
// overwriting any previous target.
func (g *RelationshipGraph) AddOneToOne(kind, source, target string) {
	m := g.oneToOne[kind]
	if m == nil {
		m = make(map[string]string)
		g.oneToOne[kind] = m
	}
	m[source] = target
}

// AddOneToMany appends target to source's list under kind. Repeating an
// existing (source, target) pair is a no-op.
func (g *RelationshipGraph) AddOneToMany(kind, source, target string) {
	t := g.oneToMany[kind]
	if t == nil {
		t = newOneToMany()
		g.oneToMany[kind] = t
	}
	t.add(source, target)
}

// OneToOne returns the target of source under kind, if any.
func (g *RelationshipGraph) OneToOne(kind, source string) (string, bool) {
	target, ok := g.oneToOne[kind][source]
	return target, ok
}

// OneToMany returns source's targets under kind in insertion order.
// The returned slice is shared; callers must not mutate it.
func (g *RelationshipGraph) OneToMany(kind, source string) []string {
	t := g.oneToMany[kind]
	if t == nil {
		return nil
	}
	return t.targets[source]
}

// SourcesOf returns every source with an edge of kind pointing at target,
// sorted for deterministic output.
func (g *RelationshipGraph) SourcesOf(kind, target string) []string {
	var sources []string
	if m := g.oneToOne[kind]; m != nil {
		for source, t := range m {
			if t == target {
				sources = append(sources, source)
			}
		}
	}
	if t := g.oneToMany[kind]; t != nil {
		for source, targets := range t.targets {
			for _, tt := range targets {
				if tt == target {
					sources = append(sources, source)
					break
				}
			}
		}
	}
	sort.Strings(sources)
	return sources
}

// Kinds returns every kind that has at least one edge, sorted.
func (g *RelationshipGraph) Kinds() []string {
	set := make(map[string]bool)
	for kind, m := range g.oneToOne {
		if len(m) > 0 {
			set[kind] = true
		}
	}
	for kind, t := range g.oneToMany {
		if len(t.targets) > 0 {
			set[kind] = true
		}
	}
	kinds := make([]string, 0, len(set))
	for kind := range set {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Edge is one typed relationship, as reported by Relationships.
type Edge struct {
	Kind   string
	Source string
	Target string
}

// Relationships returns every edge where element appears as source or
// target, across all kinds, sorted by kind then source then target.
func (g *RelationshipGraph) Relationships(element string) []Edge {
	var edges []Edge
	for kind, m := range g.oneToOne {
		for source, target := range m {
			if source == element || target == element {
				edges = append(edges, Edge{Kind: kind, Source: source, Target: target})
			}
		}
	}
	for kind, t := range g.oneToMany {
		for source, targets := range t.targets {
			for _, target := range targets {
				if source == element || target == element {
					edges = append(edges, Edge{Kind: kind, Source: source, Target: target})
				}
			}
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

// Edges returns every edge of kind, sorted by source then target.
func (g *RelationshipGraph) Edges(kind string) []Edge {
	var edges []Edge
	for source, target := range g.oneToOne[kind] {
		edges = append(edges, Edge{Kind: kind, Source: source, Target: target})
	}
	if t := g.oneToMany[kind]; t != nil {
		for source, targets := range t.targets {
			for _, target := range targets {
				edges = append(edges, Edge{Kind: kind, Source: source, Target: target})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// HasTransitivePath reports whether to is reachable from from by
// following edges of kind. An element does not reach itself unless the
// graph contains an explicit cycle back to it.
func (g *RelationshipGraph) HasTransitivePath(kind, from, to string) bool {
	visited := make(map[string]bool)
	stack := g.successors(kind, from)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == to {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		stack = append(stack, g.successors(kind, cur)...)
	}
	return false
}

func (g *RelationshipGraph) successors(kind, source string) []string {
	var out []string
	if target, ok := g.oneToOne[kind][source]; ok {
		out = append(out, target)
	}
	out = append(out, g.OneToMany(kind, source)...)
	return out
}

// RemoveSource drops every outgoing edge of source across all kinds.
func (g *RelationshipGraph) RemoveSource(source string) {
	for _, m := range g.oneToOne {
		delete(m, source)
	}
	for _, t := range g.oneToMany {
		t.remove(source)
	}
}

// EdgeCount returns the total number of edges across all kinds.
func (g *RelationshipGraph) EdgeCount() int {
	n := 0
	for _, m := range g.oneToOne {
		n += len(m)
	}
	for _, t := range g.oneToMany {
		for _, targets := range t.targets {
			n += len(targets)
		}
	}
	return n
}
