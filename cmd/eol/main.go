package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/goquery"
	eolhttp "github.com/eolchecker/eol/http"
	"github.com/eolchecker/eol/refresh"
	eolslog "github.com/eolchecker/eol/slog"
	"github.com/eolchecker/eol/sqlite"
	"github.com/spf13/afero"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides every other source when set.
	DBPath string

	// Filesystem the config file is read from.
	Fs afero.Fs

	// Getenv looks up environment variables.
	Getenv func(string) string

	// Now returns the current time.
	Now func() time.Time

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Fs:     afero.NewOsFs(),
		Getenv: os.Getenv,
		Now:    time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eol"),
		kong.Description("Look up end-of-life dates of software and hardware."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'eol --help' to see available commands")
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

	configPath, required := cli.Config, cli.Config != ""
	if !required {
		if configPath = m.Getenv(configPathEnv); configPath != "" {
			required = true
		} else {
			configPath = defaultConfigPath()
		}
	}
	cfg, err := LoadConfig(m.Fs, configPath, required, m.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", eol.ErrorMessage(err))
		return err
	}

	dbPath := cfg.Database
	if m.DBPath != "" {
		dbPath = m.DBPath
	}
	if cli.DB != "" {
		dbPath = cli.DB
	}

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	if dbPath != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(dbPath), 0755)
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s or --db to use a different database path\n", databaseEnv)
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	deps.Search = eolslog.NewLoggingSearchService(sqlite.NewSearchService(m.DB), logger)
	deps.Metadata = sqlite.NewMetadataService(m.DB)
	deps.MaxAge = cfg.MaxAge

	if kongCtx.Command() != "status" {
		fetcher := eolhttp.NewFetcher(eolhttp.WithTimeout(cfg.Timeout))
		defer fetcher.Close()

		deps.Refresher = &refresh.Refresher{
			Fetcher:        eolslog.NewLoggingFetcher(fetcher, logger),
			Tables:         eolslog.NewLoggingReplacer(sqlite.NewReplacer(m.DB), logger),
			Metadata:       deps.Metadata,
			Extractor:      goquery.NewTableExtractor(),
			Menu:           goquery.NewMenuExtractor(),
			Normalizer:     cfg.Normalizer(),
			RateLimiter:    refresh.NewDomainLimiter(cfg.RateLimit),
			SoftwareURL:    cfg.SoftwareURL,
			HardwareURL:    cfg.HardwareURL,
			ExcludeVendors: cfg.ExcludeVendors,
			Concurrency:    cfg.Concurrency,
			Now:            m.Now,
		}
	}

	return kongCtx.Run(deps)
}
