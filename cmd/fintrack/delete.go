package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// deleteCmd removes a transaction after confirmation. -yes skips the prompt.
type deleteCmd struct {
	user  string
	token string
	id    string
	yes   bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction" }
func (*deleteCmd) Usage() string {
	return `fintrack delete -user <id> -id <transaction-id> [-yes]

  Deletes a transaction. Asks for confirmation unless -yes is given.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "User id owning the transaction.")
	f.StringVar(&c.token, "token", "", "Session token; used when -user is absent.")
	f.StringVar(&c.id, "id", "", "Transaction id to delete.")
	f.BoolVar(&c.yes, "yes", false, "Skip the confirmation prompt.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	confirm := func() bool { return true }
	if !c.yes {
		confirm = func() bool { return promptConfirm(c.id) }
	}

	deleted, err := a.coordinator.Delete(ctx, userID, c.id, confirm)
	if err != nil {
		return fail(err)
	}
	if !deleted {
		fmt.Println("aborted")
		return subcommands.ExitSuccess
	}

	fmt.Printf("deleted transaction %s\n", c.id)
	return subcommands.ExitSuccess
}

func promptConfirm(id string) bool {
	fmt.Printf("Delete transaction %s? [y/N]: ", id)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
