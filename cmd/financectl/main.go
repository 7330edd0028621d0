// Command financectl inspects and administers a finance database from the
// terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"finance/internal/logger"

	"github.com/google/subcommands"
)

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&quoteCmd{}, "market")
	commander.Register(&holdingsCmd{}, "accounts")
	commander.Register(&historyCmd{}, "accounts")
	commander.Register(&createUserCmd{}, "accounts")
	commander.Register(&auditCmd{}, "accounts")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
