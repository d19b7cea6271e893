package commands

import (
	"fmt"

	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/linkify"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

// ResolveCmd classifies references and prints their link addresses.
type ResolveCmd struct {
	Refs []string `arg:"" help:"References to classify (paths, dir:target, URLs)."`
	Root string   `short:"r" help:"Project root (defaults to config, then git discovery)."`
}

func (r *ResolveCmd) Run(_ *Global, cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}

	tree := projecttree.NewFSTree(resolveRoot(r.Root, cfg))
	resolver := linkify.NewResolver(tree, buildfile.NewFSFinder(tree.Root())).
		WithLinkPrefix(cfg.Server.LinkPrefix)

	for _, ref := range r.Refs {
		// A ref given on the command line is classified as the matcher would
		// see it: URLs pass through, everything else resolves against the root.
		matches := linkify.FindMatches(ref)
		if len(matches) != 1 || matches[0].Text != ref {
			fmt.Printf("%s\t(not recognized)\n", ref)
			continue
		}
		target := resolver.Classify(ref, matches[0].HasScheme)
		target.Match(func(address string) {
			fmt.Printf("%s\t%s\n", ref, address)
		}, func() {
			fmt.Printf("%s\t(not linkable)\n", ref)
		})
	}
	return nil
}
