package commands

import (
	"fmt"

	"git.home.luguber.info/inful/reportlink/internal/config"
)

// InitCmd writes a starter configuration file.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, cli *CLI) error {
	if err := config.WriteStarter(cli.Config, i.Force); err != nil {
		return err
	}
	fmt.Println("Wrote configuration to", cli.Config)
	return nil
}
