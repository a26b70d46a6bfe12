package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"fintrack/internal/core"
)

// updateCmd edits one transaction through the coordinator's staging buffer:
// the existing record is loaded, the given flags overwrite its fields, and the
// result is submitted as a whole.
type updateCmd struct {
	user  string
	token string
	id    string

	amount      string
	category    string
	typ         string
	date        string
	description string
	descSet     bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "update an existing transaction" }
func (*updateCmd) Usage() string {
	return `fintrack update -user <id> -id <transaction-id> [-amount <n>] [-category <c>] [-type <t>] [-date <d>] [-desc <text>]

  Rewrites the given fields of an existing transaction. Omitted flags keep
  their current values.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id owning the transaction.")
	f.StringVar(&c.token, "token", "", "Session token; used when -user is absent.")
	f.StringVar(&c.id, "id", "", "Transaction id to update.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.category, "category", "", "New category.")
	f.StringVar(&c.typ, "type", "", "New type: income or expense.")
	f.StringVar(&c.date, "date", "", "New date (YYYY-MM-DD).")
	f.Func("desc", "New description. An empty value clears it.", func(s string) error {
		c.description = s
		c.descSet = true
		return nil
	})
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}

	userID, err := a.resolveUser(c.user, c.token)
	if err != nil {
		return usageError(err)
	}
	if c.id == "" {
		return usageError(fmt.Errorf("-id is required"))
	}

	txs, err := a.coordinator.Fetch(ctx, userID)
	if err != nil {
		return fail(err)
	}

	found := false
	for _, tx := range txs {
		if tx.TransactionID != c.id {
			continue
		}
		found = true

		buf, err := a.coordinator.BeginEdit(tx)
		if err != nil {
			return fail(err)
		}
		if c.amount != "" {
			buf.Amount = c.amount
		}
		if c.category != "" {
			buf.Category = c.category
		}
		if c.typ != "" {
			buf.Type = core.TransactionType(c.typ)
		}
		if c.date != "" {
			buf.Date = c.date
		}
		if c.descSet {
			buf.Description = c.description
		}

		if err := a.coordinator.SubmitEdit(ctx); err != nil {
			return fail(err)
		}
		break
	}
	if !found {
		return fail(fmt.Errorf("transaction %s not found for user %s", c.id, userID))
	}

	fmt.Printf("updated transaction %s\n", c.id)
	return subcommands.ExitSuccess
}
