package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/robinvdvleuten/spendlog/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	commands struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	_ = godotenv.Load()

	ctx := kong.Parse(&commands,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("spendlog"),
		kong.Description("A personal expense and income ledger backed by a plain text file."),
		kong.UsageOnError(),
		kong.Bind(&commands.Globals),
	)

	err := ctx.Run()

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
