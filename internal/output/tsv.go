// # internal/output/tsv.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"syskb/internal/graph"
	"syskb/internal/semantic"
	"syskb/internal/workspace"
)

type TSVGenerator struct {
	table     *semantic.SymbolTable
	relations *graph.RelationshipGraph
	deps      *graph.DependencyGraph
}

func NewTSVGenerator(table *semantic.SymbolTable, relations *graph.RelationshipGraph, deps *graph.DependencyGraph) *TSVGenerator {
	return &TSVGenerator{table: table, relations: relations, deps: deps}
}

// Generate writes one row per relationship edge, targets normalized to
// declared qualified names where possible.
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Kind\tSource\tTarget\n")
	for _, e := range allEdges(t.relations, t.table) {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\n", e.Kind, e.Source, e.Target))
	}

	return buf.String(), nil
}

// GenerateDependencies writes one row per file import edge.
func (t *TSVGenerator) GenerateDependencies() (string, error) {
	var buf strings.Builder

	buf.WriteString("From\tTo\n")
	files := t.deps.Files()
	sort.Strings(files)
	for _, from := range files {
		for _, to := range t.deps.Dependencies(from) {
			buf.WriteString(fmt.Sprintf("%s\t%s\n", from, to))
		}
	}

	return buf.String(), nil
}

func (t *TSVGenerator) GenerateUnresolvedImports(rows []workspace.UnresolvedImport) (string, error) {
	var buf strings.Builder

	buf.WriteString("Type\tFile\tImport\tLine\tColumn\n")
	for _, row := range rows {
		line, col := 0, 0
		if row.Span != nil {
			line, col = row.Span.Start.Line+1, row.Span.Start.Column+1
		}
		buf.WriteString(fmt.Sprintf("unresolved_import\t%s\t%s\t%d\t%d\n",
			row.File,
			row.Path,
			line,
			col,
		))
	}

	return buf.String(), nil
}
