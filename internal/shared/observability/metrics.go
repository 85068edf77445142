package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "syskb_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	PopulateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "syskb_populate_seconds",
		Help:    "Time spent on a workspace populate pass.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	FilesPopulatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syskb_files_populated_total",
		Help: "Total number of per-file populate runs.",
	})

	WorkspaceFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "syskb_workspace_files",
		Help: "Number of files currently tracked by the workspace.",
	})

	SymbolCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "syskb_symbols",
		Help: "Number of symbols in the symbol table.",
	})

	RelationshipEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "syskb_relationship_edges",
		Help: "Number of edges in the relationship graph.",
	})

	DependencyEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "syskb_dependency_edges",
		Help: "Number of import edges in the file dependency graph.",
	})

	SemanticErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syskb_semantic_errors_total",
		Help: "Total semantic diagnostics by error code.",
	}, []string{"code"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syskb_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	PopulatesThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syskb_populates_throttled_total",
		Help: "Total populate passes skipped by the rate limiter.",
	})
)
