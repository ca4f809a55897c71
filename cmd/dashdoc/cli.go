package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/dashdoc"
	"github.com/fwojciec/dashdoc/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *config.Config
	Docsets   dashdoc.DocsetService
	Searcher  dashdoc.Searcher
	Responder *dashdoc.Responder
	Converter dashdoc.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config     string `type:"path" help:"Config file (default: XDG config home)"`
	DocsetsDir string `name:"docsets-dir" type:"path" help:"Directory holding installed docsets"`
	Limit      int    `help:"Maximum results taken from each docset"`
	Verbose    bool   `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Serve the search page"`
	Respond RespondCmd `cmd:"" help:"Answer one request read from stdin"`
	Docsets DocsetsCmd `cmd:"" help:"List installed docsets"`
	Search  SearchCmd  `cmd:"" help:"Search docsets and print results as Markdown"`
}

// apply overrides cfg with the global flags that were set.
func (c *CLI) apply(cfg *config.Config) {
	if c.DocsetsDir != "" {
		cfg.DocsetsDir = c.DocsetsDir
	}
	if c.Limit != 0 {
		cfg.ResultLimit = c.Limit
	}
	if c.Verbose {
		cfg.Verbose = true
	}
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string        `short:"a" help:"Listen address"`
	HTTP        bool          `name:"http" help:"Serve through net/http instead of raw TCP"`
	MaxConns    int           `name:"max-conns" help:"Connections served at once (raw TCP)"`
	Rate        float64       `help:"Connections accepted per second, 0 for unlimited (raw TCP)"`
	ReadTimeout time.Duration `name:"read-timeout" help:"Time allowed for one request"`
}

// RespondCmd is the "respond" subcommand.
type RespondCmd struct{}

// DocsetsCmd is the "docsets" subcommand.
type DocsetsCmd struct {
	Patterns []string `arg:"" optional:"" help:"Case-insensitive patterns matched against docset names"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   []string `arg:"" help:"Search terms"`
	Docsets string   `short:"d" help:"Space-separated docset patterns"`
}
