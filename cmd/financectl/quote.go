package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "look up the current price of a symbol" }
func (*quoteCmd) Usage() string {
	return `financectl quote <symbol>

  Prints the company name and latest price for a ticker symbol.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "quote requires exactly one symbol")
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = a.Close() }()

	q, err := a.quotes.Quote(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error looking up %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	printMarkdown(quoteMarkdown(q))
	return subcommands.ExitSuccess
}
