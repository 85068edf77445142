// # internal/output/dot.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"syskb/internal/graph"
	"syskb/internal/semantic"
)

type DOTGenerator struct {
	table     *semantic.SymbolTable
	relations *graph.RelationshipGraph
}

func NewDOTGenerator(table *semantic.SymbolTable, relations *graph.RelationshipGraph) *DOTGenerator {
	return &DOTGenerator{table: table, relations: relations}
}

func (d *DOTGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph model {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.6;\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	edges := allEdges(d.relations, d.table)
	cycleEdges := cycleEdgeSet(edges)

	declared := make(map[string]semantic.Symbol)
	for _, sym := range d.table.AllSymbols() {
		declared[sym.QualifiedName()] = sym
	}

	// Targets that resolve to no declared symbol.
	undefined := make(map[string]bool)
	for _, e := range edges {
		if _, ok := declared[e.Target]; !ok {
			undefined[e.Target] = true
		}
	}

	inCycle := make(map[string]bool)
	for _, e := range edges {
		if cycleEdges[e.Source] != nil && cycleEdges[e.Source][e.Target] {
			inCycle[e.Source] = true
			inCycle[e.Target] = true
		}
	}

	// Declared elements cluster
	buf.WriteString("  subgraph cluster_model {\n")
	buf.WriteString("    label=\"Model Elements\";\n")
	buf.WriteString("    style=filled;\n")
	buf.WriteString("    color=\"whitesmoke\";\n")
	buf.WriteString("    node [fillcolor=\"white\", style=\"rounded,filled\"];\n")

	for _, qn := range sortedNames(declared) {
		label := fmt.Sprintf("%s\\n(%s)", qn, kindLabel(declared[qn]))
		if inCycle[qn] {
			buf.WriteString(fmt.Sprintf("    %q [label=\"%s\", fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", qn, label))
		} else {
			buf.WriteString(fmt.Sprintf("    %q [label=\"%s\", color=\"darkslategrey\"];\n", qn, label))
		}
	}
	buf.WriteString("  }\n\n")

	if len(undefined) > 0 {
		buf.WriteString("  // Undefined references\n")
		buf.WriteString("  node [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n")
		names := make([]string, 0, len(undefined))
		for name := range undefined {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			buf.WriteString(fmt.Sprintf("  %q;\n", name))
		}
		buf.WriteString("\n")
	}

	// Edges
	for _, e := range edges {
		switch {
		case cycleEdges[e.Source] != nil && cycleEdges[e.Source][e.Target]:
			buf.WriteString(fmt.Sprintf("  %q -> %q [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", e.Source, e.Target))
		case undefined[e.Target]:
			buf.WriteString(fmt.Sprintf("  %q -> %q [color=\"grey\", style=dashed, label=%q];\n", e.Source, e.Target, e.Kind))
		default:
			buf.WriteString(fmt.Sprintf("  %q -> %q [color=%q, penwidth=1.8, label=%q];\n", e.Source, e.Target, edgeColor(e.Kind), e.Kind))
		}
	}

	// Legend
	buf.WriteString("\n  subgraph cluster_legend {\n")
	buf.WriteString("    label=\"Legend\";\n")
	buf.WriteString("    style=dashed;\n")
	buf.WriteString("    \"declared element\" [fillcolor=\"white\", style=\"rounded,filled\"];\n")
	buf.WriteString("    \"undefined reference\" [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n")
	buf.WriteString("    \"cycle member\" [fillcolor=\"mistyrose\", color=\"red\"];\n")
	buf.WriteString("  }\n")

	buf.WriteString("}\n")
	return buf.String(), nil
}

func edgeColor(kind string) string {
	switch kind {
	case graph.Specialization:
		return "forestgreen"
	case graph.Typing:
		return "steelblue"
	case graph.Redefinition, graph.Subsetting:
		return "darkorange"
	default:
		return "grey"
	}
}

func sortedNames(symbols map[string]semantic.Symbol) []string {
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func kindLabel(sym semantic.Symbol) string {
	switch s := sym.(type) {
	case *semantic.PackageSymbol:
		return "package"
	case *semantic.ClassifierSymbol:
		return s.Kind
	case *semantic.FeatureSymbol:
		return "feature"
	case *semantic.DefinitionSymbol:
		return s.Kind + " def"
	case *semantic.UsageSymbol:
		return s.Kind
	case *semantic.AliasSymbol:
		return "alias"
	}
	return "element"
}
