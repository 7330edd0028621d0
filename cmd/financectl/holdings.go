package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	username string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display a user's positions at current prices" }
func (*holdingsCmd) Usage() string {
	return `financectl holdings -u <username>

  Displays every open position, the user's cash, and the grand total.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username whose holdings to show")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(os.Stderr, "holdings requires -u")
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

	p, err := a.portfolio.AccountValue(ctx, user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(holdingsMarkdown(user.Username, p))
	return subcommands.ExitSuccess
}
