package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// auditCmd holds the flags for the 'audit' subcommand.
type auditCmd struct {
	username string
	limit    int
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "show a user's recent account activity" }
func (*auditCmd) Usage() string {
	return `financectl audit -u <username> [-n <entries>]

  Lists sign-ins, password changes and trades, newest first.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username whose activity to show")
	f.IntVar(&c.limit, "n", 50, "number of entries to show")
}

func (c *auditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(os.Stderr, "audit requires -u")
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

	entries, err := a.audit.Recent(user.ID, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading activity: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(auditMarkdown(user.Username, entries))
	return subcommands.ExitSuccess
}
