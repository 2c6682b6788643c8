// Package main is the entry point for chonker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/chonker/internal/app"
	"github.com/dshills/chonker/internal/config"
	"github.com/dshills/chonker/internal/engine/spatial"
	"github.com/dshills/chonker/internal/export"
	"github.com/dshills/chonker/internal/frontend"
	"github.com/dshills/chonker/internal/logging"
	"github.com/dshills/chonker/internal/source"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

type options struct {
	configPath string
	format     string
	mode       string
	output     string
	logLevel   string
	input      string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stdout, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitUsage
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return exitError
	}
	if opts.format != "" {
		cfg.Input.Format = opts.format
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	log, closeLog, err := openLog(cfg, opts.mode, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := app.Load(ctx, opts.input, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if opts.mode == "edit" {
		err = edit(ctx, doc, cfg, opts, log)
	} else {
		err = emit(doc, cfg, opts, stdout)
	}
	if err != nil {
		log.Error("%s: %v", opts.mode, err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, stdout, stderr io.Writer) (options, error) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("chonker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	fs.StringVar(&opts.format, "format", "", "Input format (alto, json, image); detected when empty")
	fs.StringVar(&opts.mode, "mode", "text", "Output mode (text, export, elements, xml, edit)")
	fs.StringVar(&opts.output, "o", "", "Write output to file instead of stdout; save path in edit mode")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "chonker - spatial document editor\n\n")
		fmt.Fprintf(stderr, "Usage: chonker [options] <input>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  chonker page.xml                   Print the reconstructed text\n")
		fmt.Fprintf(stderr, "  chonker -mode elements page.json   Dump element ranges as JSON\n")
		fmt.Fprintf(stderr, "  chonker -mode edit -o out.txt scan.png\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if showVersion {
		fmt.Fprintf(stdout, "chonker %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, flag.ErrHelp
	}

	switch opts.mode {
	case "text", "export", "elements", "xml", "edit":
	default:
		return opts, fmt.Errorf("invalid mode %q (must be text, export, elements, xml or edit)", opts.mode)
	}
	if _, err := source.ParseFormat(opts.format); err != nil {
		return opts, err
	}
	if opts.logLevel != "" {
		if _, ok := logging.ParseLevel(opts.logLevel); !ok {
			return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
		}
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errUsage
	}
	opts.input = fs.Arg(0)
	return opts, nil
}

// openLog picks the log destination. The editor owns the terminal, so
// without a log file its messages are dropped.
func openLog(cfg *config.Config, mode string, stderr io.Writer) (*logging.Logger, func(), error) {
	if cfg.Logging.File != "" {
		log, closer, err := logging.OpenFile(cfg.Logging.File, cfg.LogLevel())
		if err != nil {
			return nil, nil, err
		}
		return log, func() { _ = closer.Close() }, nil
	}
	if mode == "edit" {
		return logging.Discard(), func() {}, nil
	}
	return logging.New(logging.Config{Level: cfg.LogLevel(), Output: stderr, Prefix: "chonker"}), func() {}, nil
}

// emit writes a non-interactive rendition of doc.
func emit(doc *app.Document, cfg *config.Config, opts options, stdout io.Writer) error {
	var out []byte
	switch opts.mode {
	case "text":
		out = []byte(doc.Reconstruct(cfg))
	case "xml":
		if doc.Format != source.FormatALTO {
			return app.NewOperationError("xml", opts.input, app.ErrNoSource)
		}
		out = []byte(doc.SourceText())
	case "export", "elements":
		buf := spatial.Build(doc.Tokens, spatial.WithParams(cfg.SpatialParams()))
		var sb strings.Builder
		write := export.WriteText
		if opts.mode == "elements" {
			write = export.WriteElements
		}
		if err := write(&sb, buf); err != nil {
			return err
		}
		out = []byte(sb.String())
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	if opts.output == "" {
		_, err := stdout.Write(out)
		return err
	}
	return os.WriteFile(opts.output, out, export.SaveMode)
}

// edit runs the interactive editor until the user quits.
func edit(ctx context.Context, doc *app.Document, cfg *config.Config, opts options, log *logging.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("edit mode requires a terminal")
	}

	savePath := opts.output
	if savePath == "" {
		savePath = strings.TrimSuffix(opts.input, filepath.Ext(opts.input)) + ".txt"
	}
	state := app.NewState(doc, cfg,
		app.WithSavePath(savePath),
		app.WithSource(doc.SourceText()),
		app.WithLogger(log))

	palette, err := frontend.NewPalette(cfg.View)
	if err != nil {
		return err
	}
	backend, err := frontend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer backend.Shutdown()

	metrics := frontend.Metrics{CellWidth: cfg.View.CellWidth, CellHeight: cfg.View.CellHeight}
	renderer := frontend.NewRenderer(backend, metrics, palette, opts.input, log)
	return frontend.Run(ctx, backend, state, renderer, frontend.WithRunLogger(log))
}
