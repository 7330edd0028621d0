package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// createUserCmd holds the flags for the 'create-user' subcommand.
type createUserCmd struct {
	username string
	password string
}

func (*createUserCmd) Name() string     { return "create-user" }
func (*createUserCmd) Synopsis() string { return "register an account with the starting cash balance" }
func (*createUserCmd) Usage() string {
	return `financectl create-user -u <username> -p <password>

  Creates an account exactly as the register page would.
`
}

func (c *createUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "username for the new account")
	f.StringVar(&c.password, "p", "", "password for the new account")
}

func (c *createUserCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = a.Close() }()

	user, err := a.users.Register(c.username, c.password, c.password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created %s (%s)\n", user.Username, user.ID)
	return subcommands.ExitSuccess
}
