package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"fintrack/internal/query"
)

// fetchCmd lists a user's transactions with the standard filter and sort flags.
type fetchCmd struct {
	user  string
	token string
	criteriaFlags
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch and list transactions" }
func (*fetchCmd) Usage() string {
	return `fintrack fetch -user <id> [-search <s>] [-type <t>] [-from <d>] [-to <d>] [-sort <key>] [-desc]

  Fetches the user's transactions from the ledger and prints them as a table.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id to fetch transactions for.")
	f.StringVar(&c.token, "token", "", "Session token; used when -user is absent.")
	c.criteriaFlags.register(f)
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}

	userID, err := a.resolveUser(c.user, c.token)
	if err != nil {
		return usageError(err)
	}

	criteria, err := c.criteria()
	if err != nil {
		return usageError(err)
	}

	txs, err := a.coordinator.Fetch(ctx, userID)
	if err != nil {
		return fail(err)
	}

	renderTransactions(os.Stdout, query.View(txs, criteria))
	return subcommands.ExitSuccess
}
