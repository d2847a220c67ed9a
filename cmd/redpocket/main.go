package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `default:"redpocket.hcl" help:"Path to HCL config file"`
	Debug   bool             `help:"Enable debug logging"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play the scramble in your terminal"`
	Serve    ServeCmd    `cmd:"" help:"Run the websocket game server"`
	Simulate SimulateCmd `cmd:"" help:"Run headless rounds and print payout statistics"`
}

func main() {
	// Optional .env for OPENAI_API_KEY; absence is fine, the game falls
	// back to the offline question bank.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("redpocket"),
		kong.Description("A Lunar New Year quiz with a red pocket scramble payout"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// setupLogger configures structured logging for all commands.
func setupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
