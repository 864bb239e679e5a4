// Package cmd implements the CLI application to track account balances.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/balances"
	"github.com/etnz/balances/renderer"
	"github.com/etnz/balances/storage/file"
	"github.com/etnz/balances/storage/memory"
	"github.com/etnz/balances/storage/sqlite"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists all subcommands, in display order.
var Commands = []subcommands.Command{
	&accountsCmd{},
	&addAccountCmd{},
	&editAccountCmd{},
	&removeAccountCmd{},
	&submitCmd{},
	&balancesCmd{},
	&removeBalanceCmd{},
	&overviewCmd{},
	&trendCmd{},
	&chartCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
}

var groups = map[string]string{
	"accounts":       "accounts",
	"add-account":    "accounts",
	"edit-account":   "accounts",
	"remove-account": "accounts",
	"submit":         "balances",
	"balances":       "balances",
	"remove-balance": "balances",
	"overview":       "views",
	"trend":          "views",
	"chart":          "views",
	"export":         "data",
	"import":         "data",
	"topic":          "help",
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, groups[cmd.Name()])
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "bal.toml", "Path to the TOML configuration file")
	storageKind = flag.String("storage", "", "Storage kind (memory, file, sqlite). Overrides the configuration.")
	dataPath    = flag.String("data", "", "Path to the data folder. Overrides the configuration.")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the configuration.")
	dateFormat  = flag.String("date-format", "", "Go layout of displayed dates. Overrides the configuration.")
	raw         = flag.Bool("raw", false, "Print views as plain markdown instead of rendering them for the terminal")
)

// stdout is where commands write their results.
var stdout io.Writer = os.Stdout

// createFile creates the files written by commands.
var createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }

// loadConfig loads the configuration file, environment and global flags, in that order.
func loadConfig() (*Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *storageKind != "" {
		cfg.Storage.Kind = strings.ToLower(*storageKind)
	}
	if *dataPath != "" {
		cfg.Storage.Path = *dataPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = strings.ToLower(*logLevel)
	}
	if *dateFormat != "" {
		cfg.Display.DateFormat = *dateFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is an opened book with the configuration it was opened with.
type session struct {
	*balances.Book
	cfg    *Config
	logger zerolog.Logger
	close  func() error
}

// openStore opens the store selected by 'cfg'. The returned function releases it.
func openStore(cfg *Config, logger zerolog.Logger) (balances.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Kind {
	case StorageMemory:
		return memory.New(), noop, nil
	case StorageFile:
		s, err := file.New(cfg.Storage.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case StorageSQLite:
		s, err := sqlite.Open(filepath.Join(cfg.Storage.Path, "balances.db"), logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage kind %q", cfg.Storage.Kind)
	}
}

// openSession is the central function to open the book.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Logging.Level, os.Stderr)
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s storage: %w", cfg.Storage.Kind, err)
	}
	book, err := balances.Open(store, balances.WithLogger(logger))
	if err != nil {
		closeStore()
		return nil, err
	}
	return &session{Book: book, cfg: cfg, logger: logger, close: closeStore}, nil
}

// withSession opens a session, runs 'f' and releases the session.
func withSession(f func(s *session) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := s.close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing storage: %v\n", err)
		}
	}()
	return f(s)
}

// failure reports 'err' and returns the matching exit status. A persistence failure means that
// the change was made but not saved.
func failure(err error) subcommands.ExitStatus {
	switch {
	case errors.Is(err, balances.ErrPersistence):
		fmt.Fprintf(os.Stderr, "Warning: the change was applied but could not be saved: %v\n", err)
	case errors.Is(err, balances.ErrInvalidInput), errors.Is(err, balances.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitFailure
}

// printMarkdown renders markdown for the terminal, falling back to the raw markdown.
func printMarkdown(s *session, markdown string) {
	if *raw {
		fmt.Fprint(stdout, markdown)
		return
	}
	out, err := renderer.Terminal(markdown, s.cfg.Display.Width)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cannot render markdown, printing it raw")
		out = markdown
	}
	fmt.Fprint(stdout, out)
}
