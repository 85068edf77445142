// # cmd/syskb/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"syskb/internal/config"
	"syskb/internal/shared/observability"
)

var (
	configPath = flag.String("config", "./syskb.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single analysis and exit")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	resolve    = flag.String("resolve", "", "Resolve a qualified name and print its symbol")
	tracePath  = flag.Bool("path", false, "Check for a transitive relationship path between two elements")
	pathKind   = flag.String("kind", "specialization", "Relationship kind for --path")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("syskb v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err == nil {
					output = f
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./syskb.toml" {
			cfg, err = config.Load("./syskb.example.toml")
		}
		if err != nil {
			slog.Warn("no config file found, using defaults", "error", err)
			cfg = config.Default()
		}
	}

	if *tracePath && *resolve != "" {
		fmt.Fprintln(os.Stderr, "--path and --resolve cannot be used together")
		os.Exit(1)
	}

	if *tracePath {
		if flag.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "path mode requires two element arguments: syskb --path <from> <to>")
			os.Exit(1)
		}
	} else if flag.NArg() > 0 {
		cfg.WorkspacePaths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Warn("failed to init tracing", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Initial scan and populate
	if err := app.InitialScan(ctx); err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}
	report := app.Analyze(ctx)

	if *resolve != "" {
		out, err := app.ResolveName(*resolve)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(out)
		os.Exit(0)
	}
	if *tracePath {
		out, err := app.TracePath(*pathKind, flag.Arg(0), flag.Arg(1))
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(out)
		os.Exit(0)
	}

	if err := app.GenerateOutputs(report); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	if !*ui {
		app.PrintSummary(report)
	}

	if *once {
		os.Exit(0)
	}

	if cfg.Observability.MetricsAddr != "" {
		obs := NewObservabilityServer(cfg.Observability.MetricsAddr, app)
		if err := obs.Start(); err != nil {
			slog.Error("failed to start observability server", "error", err)
		}
		defer obs.Stop(ctx)
	}

	// Watch mode
	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(report); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "syskb", "syskb.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "syskb", "syskb.log")
	}

	return "syskb.log"
}
