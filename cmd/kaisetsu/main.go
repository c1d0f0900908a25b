// Package main is the Kaisetsu CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kaisetsu/internal/backend"
	"github.com/hyperjump/kaisetsu/internal/cli"
	"github.com/hyperjump/kaisetsu/internal/config"
	"github.com/hyperjump/kaisetsu/internal/export"
	"github.com/hyperjump/kaisetsu/internal/extract"
	"github.com/hyperjump/kaisetsu/internal/grounding"
	"github.com/hyperjump/kaisetsu/internal/history"
	"github.com/hyperjump/kaisetsu/internal/models"
	"github.com/hyperjump/kaisetsu/internal/server"
	"github.com/hyperjump/kaisetsu/internal/watcher"
	"github.com/hyperjump/kaisetsu/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kaisetsu/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "kaisetsu serve" from the project dir uses the project's
// config (including debug). Returns the config and the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "serve":
		runServe()
	case "upload":
		runUpload()
	case "query":
		runQuery()
	case "status":
		runStatus()
	case "history":
		runHistory()
	case "report":
		runReport()
	case "export":
		runExport()
	case "pipeline":
		runPipeline()
	case "clear":
		runClear()
	case "preview":
		runPreview()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("kaisetsu version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func mustConfig(path string) (*config.Config, string) {
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg, resolved
}

func mustLogger(debug bool) *zap.Logger {
	logger, err := utils.NewLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// groundingFromConfig translates the config section into engine thresholds.
func groundingFromConfig(cfg *config.Config) *grounding.Config {
	g := grounding.DefaultConfig()
	if cfg.Grounding.MinOverlap > 0 {
		g.MinOverlap = cfg.Grounding.MinOverlap
	}
	if cfg.Grounding.MinWordLength > 0 {
		g.MinWordLength = cfg.Grounding.MinWordLength
	}
	g.DedupeEntities = cfg.Grounding.DedupeOrDefault()
	return g
}

func openArchive(cfg *config.Config, logger *zap.Logger) (*history.Archive, error) {
	return history.NewArchive(cfg.Storage.HistoryDatabasePath, cfg.Storage.HistoryIndexPath, logger)
}

func parseOutputFormat(s string) cli.OutputFormat {
	switch s {
	case "json":
		return cli.OutputJSON
	case "text":
		return cli.OutputText
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", s)
		os.Exit(1)
		return cli.OutputText
	}
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (watch events, backend calls, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath := mustConfig(*configPath)
	debugMode := cfg.Debug || *debug
	logger := mustLogger(debugMode)
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	client := backend.NewClient(&cfg.Backend, logger)
	archive, err := openArchive(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open history archive", zap.Error(err))
	}
	defer archive.Close()

	extractor := extract.NewExtractor()
	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			if _, err := extractor.Check(path); err != nil {
				logger.Warn("watch skipping unreadable file", zap.String("path", path), zap.Error(err))
				return
			}
			resp, err := client.Upload(context.Background(), []string{path})
			if err != nil {
				logger.Warn("watch upload failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("watch uploaded file", zap.String("path", path), zap.String("index_id", resp.IndexID))
		},
		watchOpts...,
	)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}

	srv := server.NewServer(client, grounding.NewEngine(groundingFromConfig(cfg)), archive, &cfg.Server, logger)
	srv.AttachWatcher(watchSvc, cfg, resolvedConfigPath)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runUpload() {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	wait := fs.Bool("wait", true, "wait for the backend to finish processing")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kaisetsu upload [flags] <files...>")
		os.Exit(1)
	}
	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	extractor := extract.NewExtractor()
	paths := fs.Args()
	for _, path := range paths {
		rep, err := extractor.Check(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Preflight failed for %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d words\n", path, rep.Words)
	}

	client := backend.NewClient(&cfg.Backend, logger)
	resp, err := client.Upload(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Uploaded %d file(s), index: %s\n", len(paths), resp.IndexID)

	if !*wait {
		return
	}
	status, err := client.WaitForReady(context.Background(), resp.IndexID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Processing complete: %d chunks, %d entities, %d graph edges\n",
		status.TotalChunks, status.TotalEntities, status.TotalGraphEdges)
}

// buildQueryText joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQueryText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// queryArgsReorder moves any flags (and their values) that appear after the
// question to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func queryArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runQuery() {
	queryArgs := queryArgsReorder(os.Args[2:])
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	indexID := fs.String("index", "", "index id returned by upload")
	topK := fs.Int("top-k", 0, "number of source chunks to retrieve (default from config)")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	noArchive := fs.Bool("no-archive", false, "skip recording the result in the local history")
	_ = fs.Parse(queryArgs)

	if fs.NArg() < 1 {
		fmt.Println("Usage: kaisetsu query [flags] <question>")
		os.Exit(1)
	}
	question := buildQueryText(fs.Args())
	if question == "" {
		fmt.Println("Usage: kaisetsu query [flags] <question>")
		os.Exit(1)
	}
	format := parseOutputFormat(*outputFormat)

	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	k := *topK
	if k == 0 {
		k = cfg.Backend.TopK
	}
	client := backend.NewClient(&cfg.Backend, logger)
	result, err := client.Query(context.Background(), &models.QueryRequest{
		Query:   question,
		IndexID: *indexID,
		TopK:    k,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		os.Exit(1)
	}

	eng := grounding.NewEngine(groundingFromConfig(cfg))
	rep := export.BuildReport(result, eng)
	if err := cli.WriteReport(os.Stdout, rep, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}

	if !*noArchive {
		archive, err := openArchive(cfg, logger)
		if err != nil {
			logger.Warn("failed to open history archive", zap.Error(err))
			return
		}
		defer archive.Close()
		if _, err := archive.Record(context.Background(), result); err != nil {
			logger.Warn("failed to archive query", zap.Error(err))
		}
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kaisetsu status [flags] <session-id>")
		os.Exit(1)
	}
	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	client := backend.NewClient(&cfg.Backend, logger)
	status, err := client.Status(context.Background(), fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("session:   %s\n", status.SessionID)
		fmt.Printf("status:    %s\n", status.OverallStatus)
		if status.CurrentStage != "" {
			fmt.Printf("stage:     %s\n", status.CurrentStage)
		}
		fmt.Printf("chunks:    %d\n", status.TotalChunks)
		fmt.Printf("entities:  %d\n", status.TotalEntities)
		fmt.Printf("edges:     %d\n", status.TotalGraphEdges)
		for _, doc := range status.Documents {
			fmt.Printf("  %s: %s (%d%%)\n", doc.Filename, doc.Status, doc.Progress)
		}
		if status.ErrorMessage != "" {
			fmt.Printf("error:     %s\n", status.ErrorMessage)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 20, "number of entries")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format := parseOutputFormat(*outputFormat)
	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	archive, err := openArchive(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history archive: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	var entries []*history.Entry
	if fs.NArg() > 0 {
		entries, err = archive.Search(context.Background(), buildQueryText(fs.Args()), *limit)
	} else {
		entries, err = archive.List(context.Background(), *limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "History lookup failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteHistory(os.Stdout, entries, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runReport() {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	formatFlag := fs.String("format", "markdown", "report format: markdown or json")
	outPath := fs.String("o", "", "output file (default: stdout)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kaisetsu report [flags] <history-id>")
		os.Exit(1)
	}
	var format export.Format
	switch *formatFlag {
	case "markdown", "md":
		format = export.FormatMarkdown
	case "json":
		format = export.FormatJSON
	default:
		fmt.Fprintf(os.Stderr, "Unknown report format %q; use markdown or json\n", *formatFlag)
		os.Exit(1)
	}

	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	archive, err := openArchive(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history archive: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	entry, err := archive.Get(context.Background(), fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Entry not found: %v\n", err)
		os.Exit(1)
	}
	eng := grounding.NewEngine(groundingFromConfig(cfg))
	rep := export.BuildReport(entry.Result, eng)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := rep.Write(out, format); err != nil {
		fmt.Fprintf(os.Stderr, "Report failed: %v\n", err)
		os.Exit(1)
	}
	if *outPath != "" {
		fmt.Printf("Report written: %s\n", *outPath)
	}
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dir := fs.String("dir", "exports", "directory to write export artifacts to")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 2 {
		fmt.Println("Usage: kaisetsu export [flags] <chunks|entities|graph|trace> <session-id>")
		os.Exit(1)
	}
	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	client := backend.NewClient(&cfg.Backend, logger)
	data, err := client.Export(context.Background(), fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	path, err := export.SaveArtifact(*dir, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Save failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %s: %s\n", data.DataType, path)
}

func runPipeline() {
	fs := flag.NewFlagSet("pipeline", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	client := backend.NewClient(&cfg.Backend, logger)
	var (
		out map[string]any
		err error
	)
	if fs.NArg() > 0 {
		out, err = client.PipelineVisualization(context.Background(), fs.Arg(0))
	} else {
		out, err = client.PipelineInfo(context.Background())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline lookup failed: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runClear() {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	clearHistory := fs.Bool("history", false, "also clear the local query history")
	_ = fs.Parse(os.Args[2:])

	cfg, _ := mustConfig(*configPath)
	logger := mustLogger(cfg.Debug)
	defer logger.Sync()

	indexID := ""
	if fs.NArg() > 0 {
		indexID = fs.Arg(0)
	}
	client := backend.NewClient(&cfg.Backend, logger)
	if err := client.Clear(context.Background(), indexID); err != nil {
		fmt.Fprintf(os.Stderr, "Clear failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Backend session cleared")

	if *clearHistory {
		archive, err := openArchive(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open history archive: %v\n", err)
			os.Exit(1)
		}
		defer archive.Close()
		if err := archive.Clear(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "History clear failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Local history cleared")
	}
}

func runPreview() {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	showText := fs.Bool("text", false, "print the extracted text")
	maxChars := fs.Int("max-chars", 2000, "limit on printed text")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: kaisetsu preview [flags] <file>")
		os.Exit(1)
	}
	extractor := extract.NewExtractor()
	for _, path := range fs.Args() {
		rep, err := extractor.Check(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d words, %d chars\n", rep.Path, rep.Words, rep.Chars)
		if *showText {
			text, err := extractor.Extract(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				os.Exit(1)
			}
			fmt.Println(utils.Truncate(text, *maxChars))
		}
	}
}

func runWatch() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: kaisetsu watch <add|remove|list> [path]")
		fmt.Println("  kaisetsu watch add <path>     Add directory to watch")
		fmt.Println("  kaisetsu watch remove <path>  Remove directory from watch")
		fmt.Println("  kaisetsu watch list           List watched directories")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8090", "local server URL")
	_ = fs.Parse(os.Args[3:])
	switch sub {
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: kaisetsu watch add <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		body, _ := json.Marshal(map[string]any{"path": path, "sync": true})
		resp, err := http.Post(*serverURL+"/api/v1/watch/directories", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Added: %s\n", path)
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: kaisetsu watch remove <path>")
			os.Exit(1)
		}
		path, _ := filepath.Abs(fs.Arg(0))
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/watch/directories?path="+url.QueryEscape(path), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Printf("Removed: %s\n", path)
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/watch/directories")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Directories []string `json:"directories"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		for _, d := range out.Directories {
			fmt.Println(d)
		}
	default:
		fmt.Printf("Unknown watch subcommand: %s\n", sub)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`kaisetsu - Explainable RAG client with local evidence grounding

Usage:
  kaisetsu serve [flags]                       Start the local HTTP server (with auto-upload watch)
  kaisetsu upload [flags] <files...>           Upload documents to the backend
  kaisetsu query [flags] <question>            Ask a question and show grounded evidence
  kaisetsu status [flags] <session-id>         Show backend processing status
  kaisetsu history [flags] [terms]             List or search archived queries
  kaisetsu report [flags] <history-id>         Render an archived query as a report
  kaisetsu export [flags] <type> <session-id>  Save a backend export artifact (chunks, entities, graph, trace)
  kaisetsu pipeline [session-id]               Show backend pipeline info or a session trace
  kaisetsu clear [flags] [index-id]            Clear the backend session
  kaisetsu preview [flags] <file>              Check a document is readable before upload
  kaisetsu watch <add|remove|list>             Manage watched directories (requires serve)
  kaisetsu version                             Show version
  kaisetsu help                                Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/kaisetsu/config.yaml)
  --output string    Output format: text or json (default: text)

Query Flags:
  --index string     Index id returned by upload (empty = backend default session)
  --top-k int        Number of source chunks to retrieve (default from config)
  --no-archive       Skip recording the result in the local history

Upload Flags:
  --wait             Wait for the backend to finish processing (default: true)

Report Flags:
  --format string    markdown or json (default: markdown)
  -o string          Output file (default: stdout)

Examples:
  kaisetsu upload notes.pdf paper.docx
  kaisetsu query "Who discovered radium?"
  kaisetsu query --index idx-42 --top-k 8 "What did the treaty establish?"
  kaisetsu history radium
  kaisetsu report --format markdown -o answer.md 1b2c3d
  kaisetsu export entities idx-42
  kaisetsu serve
  kaisetsu watch add ~/Documents/papers`)
}
