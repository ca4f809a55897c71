package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dashdoc"
	"github.com/fwojciec/dashdoc/config"
	"github.com/fwojciec/dashdoc/fs"
	"github.com/fwojciec/dashdoc/htmltomarkdown"
	dashslog "github.com/fwojciec/dashdoc/slog"
	"github.com/fwojciec/dashdoc/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is the effective configuration, set by Run.
	Config *config.Config

	// Services for end-to-end testing. Built from Config when nil.
	Docsets  dashdoc.DocsetService
	Searcher dashdoc.Searcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dashdoc"),
		kong.Description("Search local Dash docsets from a browser or the terminal."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'dashdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: the default config file is %s\n", config.DefaultConfigFile())
		return fmt.Errorf("failed to load config: %w", err)
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %s", dashdoc.ErrorMessage(err))
	}
	m.Config = cfg

	logger := newLogger(stderr, cfg.Verbose)

	if m.Docsets == nil {
		m.Docsets = dashslog.NewLoggingDocsetService(fs.NewDocsetService(cfg.DocsetsDir), logger)
	}
	if m.Searcher == nil {
		searcher := sqlite.NewSearcher(m.Docsets)
		searcher.Limit = cfg.ResultLimit
		m.Searcher = dashslog.NewLoggingSearcher(searcher, logger)
	}

	deps.Logger = logger
	deps.Config = cfg
	deps.Docsets = m.Docsets
	deps.Searcher = m.Searcher
	deps.Responder = dashdoc.NewResponder(m.Docsets, m.Searcher)
	deps.Converter = htmltomarkdown.NewConverter()

	return kongCtx.Run(deps)
}

// newLogger returns a text logger writing to w. Verbose enables debug
// records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
