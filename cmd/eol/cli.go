package main

import (
	"context"
	"io"
	"time"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/refresh"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Search    eol.SearchService
	Metadata  eol.MetadataService
	Refresher *refresh.Refresher

	// MaxAge is how old a table may get before search refreshes it.
	MaxAge time.Duration

	// Now returns the current time.
	Now func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" help:"Database path (default: $EOL_DB or ~/.eol/eol.db)"`
	Config  string `help:"Config file (default: $EOL_CONFIG or ~/.eol/config.yaml)"`
	Verbose bool   `short:"v" help:"Log fetches and table replaces"`

	Update UpdateCmd `cmd:"" help:"Refresh the lifecycle tables from their sources"`
	Search SearchCmd `cmd:"" help:"Search software and hardware by keyword"`
	Status StatusCmd `cmd:"" help:"Show when each table was last refreshed"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Software bool `short:"s" help:"Refresh the software table"`
	Hardware bool `short:"w" help:"Refresh the hardware table"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query     string `arg:"" help:"Keyword to look for"`
	Software  bool   `short:"s" help:"Search software only"`
	Hardware  bool   `short:"w" help:"Search hardware only"`
	NoRefresh bool   `help:"Do not refresh stale tables before searching"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
