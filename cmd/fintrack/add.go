package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"fintrack/internal/core"
)

// addCmd registers a new transaction.
type addCmd struct {
	user        string
	token       string
	id          string
	amount      string
	category    string
	typ         string
	date        string
	description string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a transaction to the ledger" }
func (*addCmd) Usage() string {
	return `fintrack add -user <id> -amount <n> -category <c> -type <income|expense> -date <YYYY-MM-DD> [-id <id>] [-desc <text>]

  Adds a transaction. A missing -id gets a generated identifier.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id owning the transaction.")
	f.StringVar(&c.token, "token", "", "Session token; used when -user is absent.")
	f.StringVar(&c.id, "id", "", "Transaction id. Generated when absent.")
	f.StringVar(&c.amount, "amount", "", "Amount, decimal text.")
	f.StringVar(&c.category, "category", "", "Category label.")
	f.StringVar(&c.typ, "type", "", "Transaction type: income or expense.")
	f.StringVar(&c.date, "date", "", "Date (YYYY-MM-DD).")
	f.StringVar(&c.description, "desc", "", "Optional description.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}

	userID, err := a.resolveUser(c.user, c.token)
	if err != nil {
		return usageError(err)
	}

	id := c.id
	if id == "" {
		id = uuid.NewString()
	}

	tx := core.Transaction{
		UserID:        userID,
		TransactionID: id,
		Amount:        c.amount,
		Category:      c.category,
		Type:          core.TransactionType(c.typ),
		Date:          c.date,
		Description:   c.description,
	}
	if err := a.coordinator.Create(ctx, tx); err != nil {
		return fail(err)
	}

	fmt.Printf("added transaction %s\n", id)
	return subcommands.ExitSuccess
}
