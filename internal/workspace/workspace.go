// # internal/workspace/workspace.go
package workspace

import (
	"log/slog"
	"sort"

	"syskb/internal/adapter"
	"syskb/internal/graph"
	"syskb/internal/semantic"
	"syskb/internal/shared/events"
	"syskb/internal/syntax"
)

// EventKind enumerates workspace notifications.
type EventKind int

const (
	FileAdded EventKind = iota
	FileUpdated
	FileRemoved
)

func (k EventKind) String() string {
	switch k {
	case FileAdded:
		return "file_added"
	case FileUpdated:
		return "file_updated"
	case FileRemoved:
		return "file_removed"
	}
	return "unknown"
}

// Event is emitted after the workspace mutation it describes.
type Event struct {
	Kind EventKind
	Path string
}

// Workspace owns the semantic state for a set of source files: the
// shared symbol table, the relationship graph, and the import
// dependency graph between files. It is not safe for concurrent use.
type Workspace struct {
	files       map[string]*File
	table       *semantic.SymbolTable
	relations   *graph.RelationshipGraph
	deps        *graph.DependencyGraph
	fileImports map[string][]string
	events      events.Emitter[Event]
	log         *slog.Logger
}

func New() *Workspace {
	return &Workspace{
		files:       make(map[string]*File),
		table:       semantic.NewSymbolTable(),
		relations:   graph.NewRelationshipGraph(),
		deps:        graph.NewDependencyGraph(),
		fileImports: make(map[string][]string),
		log:         slog.Default(),
	}
}

func (w *Workspace) SymbolTable() *semantic.SymbolTable       { return w.table }
func (w *Workspace) RelationshipGraph() *graph.RelationshipGraph { return w.relations }
func (w *Workspace) DependencyGraph() *graph.DependencyGraph  { return w.deps }

// Resolver returns a name resolver over the workspace symbol table.
func (w *Workspace) Resolver() *semantic.Resolver {
	return semantic.NewResolver(w.table)
}

// Subscribe registers a handler for workspace events.
func (w *Workspace) Subscribe(handler func(Event)) {
	w.events.Subscribe(handler)
}

// EnableAutoInvalidation subscribes a handler that marks an updated file
// and everything transitively depending on it as unpopulated.
func (w *Workspace) EnableAutoInvalidation() {
	w.Subscribe(func(ev Event) {
		if ev.Kind != FileUpdated {
			return
		}
		w.MarkFileUnpopulated(ev.Path)
		for _, path := range w.deps.AllAffected(ev.Path) {
			w.MarkFileUnpopulated(path)
		}
	})
}

// AddFile starts tracking a parsed file at version 0, unpopulated.
// Adding a path that is already tracked replaces its content like
// UpdateFile, except the version stays untouched.
func (w *Workspace) AddFile(path string, content *syntax.File) {
	if existing, ok := w.files[path]; ok {
		existing.content = content
		existing.populated = false
	} else {
		w.files[path] = newFile(path, content)
	}
	w.fileImports[path] = extractImports(content)
	w.rebuildDependencies()
	w.log.Debug("file added", "path", path, "imports", len(w.fileImports[path]))
	w.events.Emit(Event{Kind: FileAdded, Path: path})
}

// UpdateFile replaces the content of a tracked file, bumping its
// version and discarding its previous import edges. It reports whether
// the path was tracked.
func (w *Workspace) UpdateFile(path string, content *syntax.File) bool {
	file, ok := w.files[path]
	if !ok {
		return false
	}
	file.update(content)
	w.fileImports[path] = extractImports(content)
	w.rebuildDependencies()
	w.log.Debug("file updated", "path", path, "version", file.version)
	w.events.Emit(Event{Kind: FileUpdated, Path: path})
	return true
}

// RemoveFile stops tracking path, purging its symbols and dependency
// edges. It reports whether the path was tracked.
func (w *Workspace) RemoveFile(path string) bool {
	if _, ok := w.files[path]; !ok {
		return false
	}
	delete(w.files, path)
	delete(w.fileImports, path)
	w.purgeFileState(path)
	w.rebuildDependencies()
	w.events.Emit(Event{Kind: FileRemoved, Path: path})
	return true
}

// GetFile returns the tracked file for path, or nil.
func (w *Workspace) GetFile(path string) *File {
	return w.files[path]
}

func (w *Workspace) ContainsFile(path string) bool {
	_, ok := w.files[path]
	return ok
}

func (w *Workspace) FileCount() int {
	return len(w.files)
}

// FilePaths returns every tracked path, sorted.
func (w *Workspace) FilePaths() []string {
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// FileImports returns the raw import paths of a tracked file.
func (w *Workspace) FileImports(path string) []string {
	return w.fileImports[path]
}

// FileDependents returns the files that import from path.
func (w *Workspace) FileDependents(path string) []string {
	return w.deps.Dependents(path)
}

// MarkFileUnpopulated flags path for repopulation on the next
// PopulateAffected pass.
func (w *Workspace) MarkFileUnpopulated(path string) {
	if file, ok := w.files[path]; ok {
		file.populated = false
	}
}

// PopulateAll repopulates every tracked file in path order, then
// recollects references. Diagnostics from all files are concatenated.
func (w *Workspace) PopulateAll() []semantic.SemanticError {
	var errs []semantic.SemanticError
	for _, path := range w.FilePaths() {
		errs = append(errs, w.populateFile(w.files[path])...)
	}
	w.collectReferences()
	return errs
}

// PopulateAffected repopulates only unpopulated files in path order and
// returns how many were processed. A second call with no intervening
// changes processes nothing.
func (w *Workspace) PopulateAffected() (int, []semantic.SemanticError) {
	var pending []string
	for path, file := range w.files {
		if !file.populated {
			pending = append(pending, path)
		}
	}
	sort.Strings(pending)

	var errs []semantic.SemanticError
	for _, path := range pending {
		errs = append(errs, w.populateFile(w.files[path])...)
	}
	if len(pending) > 0 {
		w.collectReferences()
	}
	return len(pending), errs
}

// populateFile clears the file's previous symbols and runs the adapter
// over its current content. The file counts as populated even when
// diagnostics were produced; the symbols that did bind are usable.
func (w *Workspace) populateFile(file *File) []semantic.SemanticError {
	w.purgeFileState(file.path)
	w.table.SetCurrentFile(file.path)
	errs := adapter.NewPopulator(w.table, w.relations).Populate(file.content)
	file.populated = true
	if len(errs) > 0 {
		w.log.Debug("populated with diagnostics", "path", file.path, "errors", len(errs))
	}
	return errs
}

// purgeFileState drops the file's symbols and the relationship edges
// sourced at them, so repopulation starts clean.
func (w *Workspace) purgeFileState(path string) {
	for _, qn := range w.table.QualifiedNamesFromFile(path) {
		w.relations.RemoveSource(qn)
	}
	w.table.RemoveSymbolsFromFile(path)
}

// UnresolvedImport is an import whose target matched nothing in the
// symbol table. Path carries the textual form as written, wildcard
// included.
type UnresolvedImport struct {
	File string
	Path string
	Span *syntax.Span
}

// UnresolvedImports resolves every import in every tracked file and
// returns those whose target does not exist. Wildcard imports only
// require the namespace itself; an empty package is still a valid
// wildcard target.
func (w *Workspace) UnresolvedImports() []UnresolvedImport {
	resolver := w.Resolver()

	var unresolved []UnresolvedImport
	for _, path := range w.FilePaths() {
		file := w.files[path]
		if file.content == nil {
			continue
		}
		for _, imp := range importNodes(file.content) {
			if importTargetExists(resolver, imp) {
				continue
			}
			unresolved = append(unresolved, UnresolvedImport{
				File: path,
				Path: importSpec(imp),
				Span: imp.Span,
			})
		}
	}
	return unresolved
}

func importTargetExists(resolver *semantic.Resolver, imp *syntax.Import) bool {
	if imp.Path == "*" {
		return true
	}
	if imp.IsNamespace || imp.IsRecursive {
		return resolver.Resolve(imp.Path) != nil
	}
	return len(resolver.ResolveImport(imp.Path)) > 0
}

func (w *Workspace) collectReferences() {
	semantic.NewReferenceCollector(w.table, w.relations).Collect()
}

// rebuildDependencies recomputes every file-to-file edge from the
// recorded import lists. Edges are resolved through an index of
// top-level names, so registration order does not matter.
func (w *Workspace) rebuildDependencies() {
	index := make(map[string]string)
	for path, file := range w.files {
		for _, name := range topLevelNames(file.content) {
			if _, taken := index[name]; !taken {
				index[name] = path
			}
		}
	}
	w.deps.Clear()
	for path, imports := range w.fileImports {
		for _, imp := range imports {
			if defining, ok := index[rootSegment(imp)]; ok && defining != path {
				w.deps.AddDependency(path, defining)
			}
		}
	}
}
