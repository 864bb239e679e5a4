// Command bal tracks the balances of financial accounts over time.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/balances/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when invoked by the shell for completion.
	cmd.Completion(flag.CommandLine, cmd.Commands).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
