// # internal/semantic/collector.go
package semantic

import "syskb/internal/graph"

// ReferenceCollector turns relationship edges and member imports into
// per-symbol reference lists, so that every symbol knows the locations
// that mention it.
type ReferenceCollector struct {
	table *SymbolTable
	graph *graph.RelationshipGraph
}

func NewReferenceCollector(table *SymbolTable, g *graph.RelationshipGraph) *ReferenceCollector {
	return &ReferenceCollector{table: table, graph: g}
}

// Collect walks every relationship edge and records a reference on the
// target symbol at the referrer's declaration site. Edges whose source
// or target cannot be resolved are skipped. It returns the number of
// references recorded.
func (c *ReferenceCollector) Collect() int {
	recorded := 0
	for _, kind := range c.graph.Kinds() {
		for _, edge := range c.graph.Edges(kind) {
			referrer := c.table.LookupQualified(edge.Source)
			if referrer == nil || referrer.Span() == nil {
				continue
			}
			target := c.resolveTarget(edge.Target)
			if target == nil {
				continue
			}
			target.AddReference(Reference{
				File: referrer.SourceFile(),
				Span: *referrer.Span(),
			})
			recorded++
		}
	}
	recorded += c.collectImportReferences()
	return recorded
}

// resolveTarget accepts either an exact qualified name or, as edges
// store reference text as written, a simple name matched globally.
func (c *ReferenceCollector) resolveTarget(name string) Symbol {
	if sym := c.table.LookupQualified(name); sym != nil {
		return sym
	}
	return c.table.LookupGlobal(name)
}

// collectImportReferences records a reference on each symbol named by an
// exact member import. Wildcard imports name no single symbol and are
// skipped.
func (c *ReferenceCollector) collectImportReferences() int {
	recorded := 0
	for id := 0; id < c.table.ScopeCount(); id++ {
		for _, imp := range c.table.Scope(id).Imports() {
			if imp.IsNamespace || imp.IsRecursive || imp.Span == nil {
				continue
			}
			target := c.table.LookupQualified(imp.Path)
			if target == nil {
				continue
			}
			target.AddReference(Reference{File: imp.File, Span: *imp.Span})
			recorded++
		}
	}
	return recorded
}
