// # cmd/syskb/app.go
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"syskb/internal/config"
	"syskb/internal/history"
	"syskb/internal/output"
	"syskb/internal/parser"
	"syskb/internal/semantic"
	"syskb/internal/shared/observability"
	"syskb/internal/shared/util"
	"syskb/internal/watcher"
	"syskb/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
)

type App struct {
	Config    *config.Config
	Workspace *workspace.Workspace

	history    *history.Store
	limiter    *util.Limiter
	teaProgram *tea.Program

	// Parse errors keyed by file path for incremental updates.
	parseErrsByFile map[string][]*parser.Error
}

// Report is the outcome of one analysis pass over the workspace.
type Report struct {
	FileCount         int
	SymbolCount       int
	Duration          time.Duration
	Diagnostics       []semantic.SemanticError
	ParseErrors       []*parser.Error
	UnresolvedImports []workspace.UnresolvedImport
	CircularFiles     []string
}

func NewApp(cfg *config.Config) (*App, error) {
	ws := workspace.New()
	ws.EnableAutoInvalidation()

	a := &App{
		Config:          cfg,
		Workspace:       ws,
		limiter:         util.NewLimiter(cfg.Limits.PopulatesPerSecond, cfg.Limits.Burst),
		parseErrsByFile: make(map[string][]*parser.Error),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		a.history = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

func (a *App) InitialScan(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "initial_scan")
	defer span.End()

	files, err := a.ScanDirectories(a.Config.WorkspacePaths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}

	for _, filePath := range files {
		if err := a.ProcessFile(filePath); err != nil {
			slog.Warn("failed to process file", "path", filePath, "error", err)
		}
	}

	span.SetAttributes(attribute.Int("files", len(files)))
	return nil
}

func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !a.hasModelExtension(path) {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func (a *App) hasModelExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, allowed := range a.Config.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ProcessFile parses path and registers the result with the workspace.
// Files with parse errors are still registered; the elements that did
// parse contribute their symbols.
func (a *App) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	start := time.Now()
	file, parseErrs := parser.Parse(path, string(data))
	observability.ParsingDuration.Observe(time.Since(start).Seconds())

	a.parseErrsByFile[path] = parseErrs
	if len(parseErrs) > 0 {
		slog.Debug("parsed with errors", "path", path, "errors", len(parseErrs))
	}

	if a.Workspace.ContainsFile(path) {
		a.Workspace.UpdateFile(path, file)
	} else {
		a.Workspace.AddFile(path, file)
	}
	return nil
}

// Analyze runs a full populate pass and derives the workspace report:
// semantic diagnostics, unresolved imports, and files caught in import
// cycles. Gauges and the history store are refreshed as a side effect.
func (a *App) Analyze(ctx context.Context) Report {
	_, span := observability.Tracer.Start(ctx, "analyze")
	defer span.End()

	start := time.Now()
	diags := a.Workspace.PopulateAll()
	report := a.buildReport(diags, time.Since(start))

	observability.PopulateDuration.WithLabelValues("all").Observe(report.Duration.Seconds())
	a.recordReport(report)

	span.SetAttributes(
		attribute.Int("files", report.FileCount),
		attribute.Int("symbols", report.SymbolCount),
		attribute.Int("diagnostics", len(report.Diagnostics)),
	)
	return report
}

// Reanalyze repopulates only invalidated files and rebuilds the report.
func (a *App) Reanalyze(ctx context.Context) Report {
	_, span := observability.Tracer.Start(ctx, "reanalyze")
	defer span.End()

	start := time.Now()
	count, diags := a.Workspace.PopulateAffected()
	report := a.buildReport(diags, time.Since(start))

	observability.PopulateDuration.WithLabelValues("affected").Observe(report.Duration.Seconds())
	observability.FilesPopulatedTotal.Add(float64(count))
	a.recordReport(report)

	span.SetAttributes(attribute.Int("repopulated", count))
	return report
}

func (a *App) buildReport(diags []semantic.SemanticError, duration time.Duration) Report {
	return Report{
		FileCount:         a.Workspace.FileCount(),
		SymbolCount:       a.Workspace.SymbolTable().SymbolCount(),
		Duration:          duration,
		Diagnostics:       diags,
		ParseErrors:       a.allParseErrors(),
		UnresolvedImports: a.AnalyzeImports(),
		CircularFiles:     a.CircularFiles(),
	}
}

func (a *App) allParseErrors() []*parser.Error {
	paths := make([]string, 0, len(a.parseErrsByFile))
	for path := range a.parseErrsByFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var errs []*parser.Error
	for _, path := range paths {
		errs = append(errs, a.parseErrsByFile[path]...)
	}
	return errs
}

// AnalyzeImports returns the imports that resolve to nothing.
func (a *App) AnalyzeImports() []workspace.UnresolvedImport {
	return a.Workspace.UnresolvedImports()
}

// CircularFiles returns the tracked files that participate in an
// import cycle, sorted.
func (a *App) CircularFiles() []string {
	deps := a.Workspace.DependencyGraph()

	var circular []string
	for _, path := range a.Workspace.FilePaths() {
		if deps.HasCircularDependency(path) {
			circular = append(circular, path)
		}
	}
	return circular
}

func (a *App) recordReport(report Report) {
	observability.WorkspaceFiles.Set(float64(report.FileCount))
	observability.SymbolCount.Set(float64(report.SymbolCount))
	observability.RelationshipEdges.Set(float64(a.Workspace.RelationshipGraph().EdgeCount()))
	observability.DependencyEdges.Set(float64(a.Workspace.DependencyGraph().EdgeCount()))
	for _, diag := range report.Diagnostics {
		observability.SemanticErrorsTotal.WithLabelValues(diag.Code()).Inc()
	}

	if a.history == nil {
		return
	}
	snap := history.Snapshot{
		Timestamp:         time.Now().UTC(),
		FileCount:         report.FileCount,
		SymbolCount:       report.SymbolCount,
		RelationshipCount: a.Workspace.RelationshipGraph().EdgeCount(),
		DependencyCount:   a.Workspace.DependencyGraph().EdgeCount(),
		ErrorCount:        len(report.Diagnostics),
		CycleCount:        len(report.CircularFiles),
		Duration:          report.Duration,
	}
	if _, err := a.history.Append(snap); err != nil {
		slog.Warn("failed to record history snapshot", "error", err)
	}
}

// HandleChanges is the watcher callback: it applies a debounced batch
// of file changes and repopulates what they invalidated. Batches beyond
// the configured populate rate are dropped; the files stay marked and
// are picked up by the next allowed batch.
func (a *App) HandleChanges(changes []watcher.Change) {
	for _, change := range changes {
		if change.Removed {
			if a.Workspace.RemoveFile(change.Path) {
				delete(a.parseErrsByFile, change.Path)
				slog.Info("file removed", "path", change.Path)
			}
			continue
		}
		if err := a.ProcessFile(change.Path); err != nil {
			slog.Warn("failed to process file", "path", change.Path, "error", err)
		}
	}

	if !a.limiter.Allow(1) {
		observability.PopulatesThrottledTotal.Inc()
		slog.Debug("populate throttled", "changes", len(changes))
		return
	}

	report := a.Reanalyze(context.Background())
	if err := a.GenerateOutputs(report); err != nil {
		slog.Warn("failed to generate outputs", "error", err)
	}
	a.PrintSummary(report)

	if a.teaProgram != nil {
		a.teaProgram.Send(reportMsg{report: report})
	}
	if len(report.Diagnostics) > 0 || len(report.CircularFiles) > 0 {
		fmt.Print("\a")
	}
}

// ResolveName resolves a qualified name and formats the symbol, its
// relationships, and its recorded references.
func (a *App) ResolveName(name string) (string, error) {
	sym := a.Workspace.Resolver().Resolve(name)
	if sym == nil {
		return "", fmt.Errorf("name not found: %s", name)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", sym.QualifiedName()))
	b.WriteString(fmt.Sprintf("  kind: %s\n", symbolKind(sym)))
	if sym.SourceFile() != "" {
		loc := sym.SourceFile()
		if sym.Span() != nil {
			loc = fmt.Sprintf("%s:%d:%d", loc, sym.Span().Start.Line+1, sym.Span().Start.Column+1)
		}
		b.WriteString(fmt.Sprintf("  declared: %s\n", loc))
	}

	edges := a.Workspace.RelationshipGraph().Relationships(sym.QualifiedName())
	if len(edges) > 0 {
		b.WriteString("  relationships:\n")
		for _, e := range edges {
			b.WriteString(fmt.Sprintf("    %s: %s -> %s\n", e.Kind, e.Source, e.Target))
		}
	}

	refs := sym.References()
	if len(refs) > 0 {
		b.WriteString(fmt.Sprintf("  references (%d):\n", len(refs)))
		for _, r := range refs {
			b.WriteString(fmt.Sprintf("    %s:%d:%d\n", r.File, r.Span.Start.Line+1, r.Span.Start.Column+1))
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// TracePath searches for a transitive relationship path of the given
// kind and formats the chain of elements it passes through.
func (a *App) TracePath(kind, from, to string) (string, error) {
	resolver := a.Workspace.Resolver()
	src := resolver.Resolve(from)
	if src == nil {
		return "", fmt.Errorf("source element not found: %s", from)
	}
	dst := resolver.Resolve(to)
	if dst == nil {
		return "", fmt.Errorf("target element not found: %s", to)
	}

	chain, ok := a.findChain(kind, src.QualifiedName(), dst.QualifiedName())
	if !ok {
		return "", fmt.Errorf("no %s path from %s to %s", kind, from, to)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s path: %s -> %s\n\n", kind, from, to))
	for i, element := range chain {
		b.WriteString(element)
		b.WriteString("\n")
		if i < len(chain)-1 {
			b.WriteString("  -> ")
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// findChain walks the relationship graph breadth-first, resolving each
// edge target back to its declaring symbol so hops written as simple
// names still connect across scopes.
func (a *App) findChain(kind, from, to string) ([]string, bool) {
	table := a.Workspace.SymbolTable()
	g := a.Workspace.RelationshipGraph()

	normalize := func(name string) string {
		if sym := table.LookupQualified(name); sym != nil {
			return sym.QualifiedName()
		}
		if sym := table.LookupGlobal(name); sym != nil {
			return sym.QualifiedName()
		}
		return name
	}

	parent := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		var targets []string
		if t, ok := g.OneToOne(kind, cur); ok {
			targets = append(targets, t)
		}
		targets = append(targets, g.OneToMany(kind, cur)...)

		for _, raw := range targets {
			next := normalize(raw)
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			if next == to {
				var chain []string
				for n := next; n != ""; n = parent[n] {
					chain = append([]string{n}, chain...)
				}
				return chain, true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// GenerateOutputs writes the configured export files from the current
// workspace state. The TSV export carries an unresolved-import section
// after the relationship rows when there is anything to report.
func (a *App) GenerateOutputs(report Report) error {
	ws := a.Workspace

	if a.Config.Output.DOT != "" {
		dotGen := output.NewDOTGenerator(ws.SymbolTable(), ws.RelationshipGraph())
		dot, err := dotGen.Generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.DOT, []byte(dot), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.TSV != "" {
		tsvGen := output.NewTSVGenerator(ws.SymbolTable(), ws.RelationshipGraph(), ws.DependencyGraph())
		relationshipsTSV, err := tsvGen.Generate()
		if err != nil {
			return err
		}
		tsv := relationshipsTSV

		dependenciesTSV, err := tsvGen.GenerateDependencies()
		if err != nil {
			return err
		}
		tsv = strings.TrimRight(tsv, "\n") + "\n\n" + strings.TrimRight(dependenciesTSV, "\n") + "\n"

		if len(report.UnresolvedImports) > 0 {
			unresolvedTSV, err := tsvGen.GenerateUnresolvedImports(report.UnresolvedImports)
			if err != nil {
				return err
			}
			tsv = strings.TrimRight(tsv, "\n") + "\n\n" + strings.TrimRight(unresolvedTSV, "\n") + "\n"
		}

		if err := os.WriteFile(a.Config.Output.TSV, []byte(tsv), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.PlantUML != "" {
		umlGen := output.NewPlantUMLGenerator(ws.SymbolTable(), ws.RelationshipGraph())
		uml, err := umlGen.Generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.PlantUML, []byte(uml), 0644); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) PrintSummary(report Report) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Update: %d files, %d symbols in %v\n", report.FileCount, report.SymbolCount, report.Duration)

	if len(report.ParseErrors) > 0 {
		fmt.Printf("⚠️  FOUND %d PARSE ERRORS:\n", len(report.ParseErrors))
		for _, e := range report.ParseErrors {
			fmt.Printf("   %s\n", e.Error())
		}
	}

	if len(report.Diagnostics) > 0 {
		fmt.Printf("⚠️  FOUND %d SEMANTIC ISSUES:\n", len(report.Diagnostics))
		for _, d := range report.Diagnostics {
			fmt.Printf("   [%s] %s\n", d.Code(), d.Error())
		}
	} else {
		fmt.Println("✅ No semantic issues found.")
	}

	if len(report.UnresolvedImports) > 0 {
		fmt.Printf("❓ FOUND %d UNRESOLVED IMPORTS:\n", len(report.UnresolvedImports))
		for _, u := range report.UnresolvedImports {
			fmt.Printf("   %s in %s\n", u.Path, u.File)
		}
	} else {
		fmt.Println("✅ No unresolved imports found.")
	}

	if len(report.CircularFiles) > 0 {
		fmt.Printf("⚠️  FOUND %d FILES IN IMPORT CYCLES:\n", len(report.CircularFiles))
		for _, f := range report.CircularFiles {
			fmt.Printf("   %s\n", f)
		}
	} else {
		fmt.Println("✅ No import cycles found.")
	}
	fmt.Println(strings.Repeat("-", 40))
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Extensions,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	// Runs until the process exits.
	return w.Watch(a.Config.WorkspacePaths)
}

func (a *App) RunUI(initial Report) error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	go func() {
		p.Send(reportMsg{report: initial})
	}()

	_, err := p.Run()
	return err
}

func symbolKind(sym semantic.Symbol) string {
	switch s := sym.(type) {
	case *semantic.PackageSymbol:
		return "package"
	case *semantic.ClassifierSymbol:
		return "classifier " + s.Kind
	case *semantic.FeatureSymbol:
		return "feature"
	case *semantic.DefinitionSymbol:
		return "definition " + s.Kind
	case *semantic.UsageSymbol:
		return "usage " + s.Kind
	case *semantic.AliasSymbol:
		return "alias -> " + s.Target
	}
	return "unknown"
}
