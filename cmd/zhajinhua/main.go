package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the room server"`
	Play    PlayCmd          `cmd:"" help:"Play a local game against bots"`
	Join    JoinCmd          `cmd:"" help:"Join a room on a running server"`
	Odds    OddsCmd          `cmd:"" help:"Estimate win probability for a hand"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("zhajinhua"),
		kong.Description("Zha Jin Hua (three-card brag) server, client and odds tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
