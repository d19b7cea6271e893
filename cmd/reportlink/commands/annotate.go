package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/reportlink/internal/annotate"
	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/linkify"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

// AnnotateCmd annotates tool output from a file or stdin to stdout.
type AnnotateCmd struct {
	File  string `arg:"" optional:"" help:"Input file (defaults to stdin)."`
	Root  string `short:"r" help:"Project root (defaults to config, then git discovery)."`
	Cache string `help:"SQLite cache file (defaults to config; empty keeps the cache in memory)."`
}

func (a *AnnotateCmd) Run(_ *Global, cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	root := resolveRoot(a.Root, cfg)

	cachePath := a.Cache
	if cachePath == "" {
		cachePath = cfg.Cache.Path
	}
	cache, closeCache, err := openCache(cachePath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer closeCache()

	var in io.Reader = os.Stdin
	if a.File != "" {
		f, err := os.Open(a.File)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	tree := projecttree.NewFSTree(root)
	engine := linkify.NewEngine(
		linkify.NewResolver(tree, buildfile.NewFSFinder(tree.Root())).WithLinkPrefix(cfg.Server.LinkPrefix),
		cache,
	)
	return annotate.NewService(engine).AnnotateReader(ctx, in, os.Stdout)
}
