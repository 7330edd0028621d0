package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	username string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list a user's transactions, newest first" }
func (*historyCmd) Usage() string {
	return `financectl history -u <username>
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username whose history to show")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(os.Stderr, "history requires -u")
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = a.Close() }()

	user, err := lookupUser(a.db.DB(), c.username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading user %s: %v\n", c.username, err)
		return subcommands.ExitFailure
	}

	entries, err := a.ledger.History(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading history: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(historyMarkdown(user.Username, entries))
	return subcommands.ExitSuccess
}
