package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docdex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	DB           *sqlite.DB
	Fingerprints *sqlite.FingerprintService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Build  BuildCmd  `cmd:"" help:"Build the search index from a documentation tree"`
	Stats  StatsCmd  `cmd:"" help:"Load an index artifact and print corpus statistics"`
	Show   ShowCmd   `cmd:"" help:"Load an index artifact and print one document"`
	Builds BuildsCmd `cmd:"" help:"List recent build runs"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Dir         string   `arg:"" help:"Documentation page tree root"`
	Out         string   `short:"o" default:"." help:"Output directory for the search artifact"`
	Config      string   `short:"c" help:"YAML configuration file"`
	Workers     int      `short:"w" default:"-1" help:"Parallel worker count (overrides config)"`
	BatchSize   int      `default:"-1" help:"Batch size (overrides config)"`
	Incremental bool     `short:"i" help:"Enable incremental build"`
	Exclude     []string `short:"x" name:"exclude" help:"Exclude pages matching glob (repeatable)"`
	Pretty      bool     `help:"Emit indented JSON instead of minified"`
	FailFast    bool     `help:"Abort the build on the first page error"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Source string `arg:"" help:"Index artifact file path or site base URL"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Source string `arg:"" help:"Index artifact file path or site base URL"`
	ID     string `arg:"" help:"Document id"`
}

// BuildsCmd is the "builds" subcommand.
type BuildsCmd struct {
	Limit int `short:"n" default:"10" help:"Number of runs to show"`
}
