package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/reportlink/internal/annotate"
	"git.home.luguber.info/inful/reportlink/internal/browse"
	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/cachestore"
	"git.home.luguber.info/inful/reportlink/internal/config"
	"git.home.luguber.info/inful/reportlink/internal/janitor"
	"git.home.luguber.info/inful/reportlink/internal/linkify"
	"git.home.luguber.info/inful/reportlink/internal/logfields"
	"git.home.luguber.info/inful/reportlink/internal/metrics"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
	"git.home.luguber.info/inful/reportlink/internal/server/httpserver"
	"git.home.luguber.info/inful/reportlink/internal/watch"
)

// ServeCmd runs the annotation and browse HTTP server.
type ServeCmd struct {
	Root   string `short:"r" help:"Project root (defaults to config, then git discovery)."`
	Listen string `short:"l" help:"Listen address (overrides config)."`
}

func (s *ServeCmd) Run(_ *Global, cli *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	if s.Listen != "" {
		cfg.Server.Listen = s.Listen
	}
	root := resolveRoot(s.Root, cfg)
	slog.Info("Serving project", logfields.Root(root))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prometheus.Registry
	if cfg.Monitoring.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	tree := projecttree.NewFSTree(root)
	resolver := linkify.NewResolver(tree, buildfile.NewFSFinder(tree.Root())).
		WithLinkPrefix(cfg.Server.LinkPrefix)

	cache, closeCache, err := openCache(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer closeCache()

	engine := linkify.NewEngine(resolver, cache).WithRecorder(recorder)

	if cfg.Events.Enabled {
		publisher, err := linkify.NewNATSPublisher(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			// Events are best-effort tooling; the server still runs without them.
			slog.Warn("Dead-reference events disabled", logfields.Error(err))
		} else {
			defer publisher.Close()
			engine = engine.WithPublisher(publisher)
		}
	}

	if invalidator, ok := cache.(linkify.Invalidator); ok {
		watcher, err := watch.New(tree.Root(), invalidator, recorder)
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer watcher.Stop()
	}

	if store, ok := cache.(*cachestore.Store); ok {
		j, err := janitor.New(store,
			config.Duration(cfg.Cache.TTL, 168*time.Hour),
			config.Duration(cfg.Cache.PruneInterval, time.Hour))
		if err != nil {
			return fmt.Errorf("create janitor: %w", err)
		}
		j.Start(ctx)
		defer j.Stop()
	}

	server := httpserver.New(cfg,
		annotate.NewService(engine),
		browse.NewHandler(tree, cfg.Server.LinkPrefix).WithRecorder(recorder),
		registry)

	if err := server.Start(ctx); err != nil {
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
