package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"fintrack/internal/query"
	"fintrack/internal/report"
)

// summaryCmd prints income/expense totals and the per-category expense
// breakdown for the (optionally filtered) transaction set.
type summaryCmd struct {
	user  string
	token string
	criteriaFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show totals and the expense breakdown" }
func (*summaryCmd) Usage() string {
	return `fintrack summary -user <id> [-search <s>] [-type <t>] [-from <d>] [-to <d>]

  Shows total income, total expenses, balance and expenses by category.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id to summarize.")
	f.StringVar(&c.token, "token", "", "Session token; used when -user is absent.")
	c.criteriaFlags.register(f)
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	view := query.View(txs, criteria)

	s := report.Summarize(view)
	fmt.Printf("income:   %.2f\n", s.TotalIncome)
	fmt.Printf("expenses: %.2f\n", s.TotalExpense)
	fmt.Printf("balance:  %.2f\n", s.Balance)

	breakdown := report.ExpenseBreakdown(view)
	if len(breakdown) == 0 {
		return subcommands.ExitSuccess
	}

	fmt.Println("\nexpenses by category:")
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, ca := range breakdown {
		fmt.Fprintf(tw, "  %s\t%.2f\n", ca.Name, ca.Amount)
	}
	tw.Flush()
	return subcommands.ExitSuccess
}
