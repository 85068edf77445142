// # internal/workspace/imports.go
package workspace

import (
	"strings"

	"syskb/internal/syntax"
)

// extractImports collects every import path in the file, at any nesting
// depth. The bare `*` wildcard names no namespace and is skipped.
func extractImports(file *syntax.File) []string {
	if file == nil {
		return nil
	}
	var paths []string
	var walk func(elements []syntax.Element)
	walk = func(elements []syntax.Element) {
		for _, el := range elements {
			switch e := el.(type) {
			case *syntax.Import:
				if e.Path != "*" {
					paths = append(paths, e.Path)
				}
			case *syntax.Namespace:
				walk(e.Elements)
			case *syntax.Package:
				walk(e.Elements)
			case *syntax.Definition:
				walk(e.Body)
			case *syntax.Usage:
				walk(e.Body)
			case *syntax.Classifier:
				walk(e.Body)
			case *syntax.Feature:
				walk(e.Body)
			}
		}
	}
	if file.Namespace != nil {
		walk(file.Namespace.Elements)
	}
	walk(file.Elements)
	return paths
}

// importNodes collects the import elements themselves, spans included,
// at any nesting depth.
func importNodes(file *syntax.File) []*syntax.Import {
	if file == nil {
		return nil
	}
	var imports []*syntax.Import
	var walk func(elements []syntax.Element)
	walk = func(elements []syntax.Element) {
		for _, el := range elements {
			switch e := el.(type) {
			case *syntax.Import:
				imports = append(imports, e)
			case *syntax.Namespace:
				walk(e.Elements)
			case *syntax.Package:
				walk(e.Elements)
			case *syntax.Definition:
				walk(e.Body)
			case *syntax.Usage:
				walk(e.Body)
			case *syntax.Classifier:
				walk(e.Body)
			case *syntax.Feature:
				walk(e.Body)
			}
		}
	}
	if file.Namespace != nil {
		walk(file.Namespace.Elements)
	}
	walk(file.Elements)
	return imports
}

// importSpec rebuilds the textual form of an import for display.
func importSpec(imp *syntax.Import) string {
	switch {
	case imp.Path == "*":
		return "*"
	case imp.IsRecursive:
		return imp.Path + "::**"
	case imp.IsNamespace:
		return imp.Path + "::*"
	default:
		return imp.Path
	}
}

// topLevelNames collects the names an importing file can address this
// file by: the root namespace plus every named top-level element.
func topLevelNames(file *syntax.File) []string {
	if file == nil {
		return nil
	}
	var names []string
	if file.Namespace != nil && file.Namespace.Name != "" {
		names = append(names, rootSegment(file.Namespace.Name))
	}
	for _, el := range file.Elements {
		switch e := el.(type) {
		case *syntax.Package:
			if e.Name != "" {
				names = append(names, rootSegment(e.Name))
			}
		case *syntax.Definition:
			names = append(names, e.Name)
		case *syntax.Classifier:
			names = append(names, e.Name)
		case *syntax.Usage:
			if e.Name != "" {
				names = append(names, e.Name)
			}
		case *syntax.Feature:
			names = append(names, e.Name)
		case *syntax.Alias:
			names = append(names, e.Name)
		}
	}
	return names
}

func rootSegment(path string) string {
	if i := strings.Index(path, "::"); i >= 0 {
		return path[:i]
	}
	return path
}
