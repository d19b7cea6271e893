package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/reportlink/cmd/reportlink/commands"
	"git.home.luguber.info/inful/reportlink/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("reportlink"),
		kong.Description("Annotate build-tool output with links to project files and targets."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, cli)
	ctx.FatalIfErrorf(err)
}
