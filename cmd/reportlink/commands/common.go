package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/reportlink/internal/cachestore"
	"git.home.luguber.info/inful/reportlink/internal/config"
	"git.home.luguber.info/inful/reportlink/internal/gitroot"
	"git.home.luguber.info/inful/reportlink/internal/linkify"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"reportlink.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Annotate AnnotateCmd `cmd:"" help:"Annotate tool output from a file or stdin"`
	Resolve  ResolveCmd  `cmd:"" help:"Classify references and print their link addresses"`
	Serve    ServeCmd    `cmd:"" help:"Run the annotation and browse HTTP server"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file when present, falling back to
// defaults when the default file is absent.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) && path == "reportlink.yaml" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// resolveRoot picks the project root: explicit flag, then config, then git discovery.
func resolveRoot(flagRoot string, cfg *config.Config) string {
	if flagRoot != "" {
		return flagRoot
	}
	if cfg.Root != "" {
		return cfg.Root
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return gitroot.Discover(wd)
}

// openCache opens the configured cache: sqlite-backed when a path is set,
// in-memory otherwise. The returned closer is a no-op for the memory cache.
func openCache(path string) (linkify.Cache, func() error, error) {
	if path == "" {
		return linkify.NewMemoryCache(), func() error { return nil }, nil
	}
	store, err := cachestore.New(path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
