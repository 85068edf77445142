// # internal/output/plantuml.go
package output

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"syskb/internal/graph"
	"syskb/internal/semantic"
)

type PlantUMLGenerator struct {
	table     *semantic.SymbolTable
	relations *graph.RelationshipGraph
}

func NewPlantUMLGenerator(table *semantic.SymbolTable, relations *graph.RelationshipGraph) *PlantUMLGenerator {
	return &PlantUMLGenerator{table: table, relations: relations}
}

func (p *PlantUMLGenerator) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("@startuml\n")
	b.WriteString("skinparam componentStyle rectangle\n")
	b.WriteString("skinparam packageStyle rectangle\n")
	b.WriteString("skinparam linetype ortho\n")
	b.WriteString("skinparam nodesep 80\n")
	b.WriteString("skinparam ranksep 100\n")
	b.WriteString("left to right direction\n\n")

	edges := allEdges(p.relations, p.table)
	cycleEdges := cycleEdgeSet(edges)

	declared := make(map[string]semantic.Symbol)
	for _, sym := range p.table.AllSymbols() {
		declared[sym.QualifiedName()] = sym
	}

	undefinedSet := make(map[string]bool)
	for _, e := range edges {
		if _, ok := declared[e.Target]; !ok {
			undefinedSet[e.Target] = true
		}
	}
	undefinedNames := make([]string, 0, len(undefinedSet))
	for name := range undefinedSet {
		undefinedNames = append(undefinedNames, name)
	}
	sort.Strings(undefinedNames)

	declaredNames := sortedNames(declared)
	allNames := append(append([]string{}, declaredNames...), undefinedNames...)
	aliases := makePlantUMLAliases(allNames)

	// One package block per top-level package, everything else at the
	// top level of the diagram.
	members := make(map[string][]string)
	var unpackaged []string
	for _, qn := range declaredNames {
		if _, ok := declared[qn].(*semantic.PackageSymbol); ok && !strings.Contains(qn, "::") {
			continue
		}
		root := qn
		if i := strings.Index(qn, "::"); i >= 0 {
			root = qn[:i]
		}
		if _, ok := declared[root].(*semantic.PackageSymbol); ok && root != qn {
			members[root] = append(members[root], qn)
		} else {
			unpackaged = append(unpackaged, qn)
		}
	}

	for _, pkg := range declaredNames {
		if _, ok := declared[pkg].(*semantic.PackageSymbol); !ok || strings.Contains(pkg, "::") {
			continue
		}
		b.WriteString(fmt.Sprintf("package \"%s\" {\n", escapePlantUML(pkg)))
		for _, qn := range members[pkg] {
			b.WriteString(fmt.Sprintf("  component \"%s\" as %s\n", escapePlantUML(elementLabel(qn, declared[qn])), aliases[qn]))
		}
		b.WriteString("}\n")
	}
	for _, qn := range unpackaged {
		b.WriteString(fmt.Sprintf("component \"%s\" as %s\n", escapePlantUML(elementLabel(qn, declared[qn])), aliases[qn]))
	}

	for _, name := range undefinedNames {
		b.WriteString(fmt.Sprintf("component \"%s\" as %s #DDDDDD\n", escapePlantUML(name), aliases[name]))
	}

	b.WriteString("\n")
	for _, e := range edges {
		label := " : " + e.Kind
		arrow := "-->"
		if cycleEdges[e.Source] != nil && cycleEdges[e.Source][e.Target] {
			label = " : CYCLE"
			arrow = "-[#red,thickness=2]->"
		} else if undefinedSet[e.Target] {
			arrow = "-[#777777,dashed]->"
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s\n", aliases[e.Source], arrow, aliases[e.Target], label))
	}

	b.WriteString("\nlegend right\n")
	b.WriteString("|= Item |= Meaning |\n")
	b.WriteString("|Node line 1|Element qualified name|\n")
	b.WriteString("|Node line 2|Element kind|\n")
	if len(undefinedNames) > 0 {
		b.WriteString("|<color:#DDDDDD>Component</color>|Undefined reference|\n")
	}
	if len(cycleEdges) > 0 {
		b.WriteString("|<color:#cc0000>Red edge</color>|Cycle edge|\n")
	}
	b.WriteString("endlegend\n")

	b.WriteString("\n@enduml\n")
	return b.String(), nil
}

func elementLabel(qualifiedName string, sym semantic.Symbol) string {
	return fmt.Sprintf("%s\\n(%s)", qualifiedName, kindLabel(sym))
}

func sanitizePlantUMLAlias(name string) string {
	if name == "" {
		return "e"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if out == "" {
		return "e"
	}
	first := rune(out[0])
	if unicode.IsDigit(first) {
		return "e_" + out
	}
	return out
}

func makePlantUMLAliases(names []string) map[string]string {
	aliases := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizePlantUMLAlias(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			aliases[name] = base
			continue
		}
		aliases[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return aliases
}

func escapePlantUML(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
