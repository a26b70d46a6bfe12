package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&fetchCmd{}, "transactions")
	commander.Register(&addCmd{}, "transactions")
	commander.Register(&updateCmd{}, "transactions")
	commander.Register(&deleteCmd{}, "transactions")

	commander.Register(&summaryCmd{}, "reports")
	commander.Register(&exportCmd{}, "reports")

	commander.Register(&loginCmd{}, "session")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
