package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/ledger/remote"
	"fintrack/internal/log"
	"fintrack/internal/query"
	"fintrack/internal/services"
	"fintrack/internal/session"
	"fintrack/internal/snapshot"
)

// app wires configuration, backend and coordinator for one command run.
// Subcommands are short-lived; everything is built fresh per invocation.
type app struct {
	cfg         *config.Config
	logger      *log.Logger
	coordinator *services.Coordinator
	sessions    *session.Manager
}

func newApp() (*app, error) {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(config.Load().LogLevel)
	cfg := cli.LoadAndValidateConfig(logger)

	client, err := buildClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize backend: %w", err)
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		coordinator: services.NewCoordinator(client, snapshot.New()),
		sessions:    session.NewManager(cfg.SessionSecret),
	}, nil
}

func buildClient(cfg *config.Config, logger *log.Logger) (ledger.Ledger, error) {
	bc := cli.BackendConfig(cfg)
	if bc.Type == backend.RemoteBackend && cfg.APITimeout > 0 {
		// Honor the configured timeout rather than the client default.
		logger.WithComponent(log.ComponentBackend).Info("Initialized remote ledger backend",
			"base_url", cfg.APIBaseURL, "timeout", cfg.APITimeout)
		return remote.NewClientWithHTTPClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.APITimeout}), nil
	}
	return backend.New(bc, logger.Logger)
}

// resolveUser returns the acting user id: a -user flag wins, otherwise a
// -token flag is verified and its identity used.
func (a *app) resolveUser(user, token string) (string, error) {
	if user != "" {
		return user, nil
	}
	if token == "" {
		return "", fmt.Errorf("either -user or -token is required")
	}
	s, err := a.sessions.Verify(token)
	if err != nil {
		return "", fmt.Errorf("verify session token: %w", err)
	}
	return s.UserID, nil
}

// criteriaFlags holds the filter and sort flags shared by the read commands.
type criteriaFlags struct {
	search   string
	typ      string
	from     string
	to       string
	sortKey  string
	sortDesc bool
}

func (cf *criteriaFlags) register(f *flag.FlagSet) {
	f.StringVar(&cf.search, "search", "", "Case-insensitive substring match on category or description.")
	f.StringVar(&cf.typ, "type", "all", "Type filter: all, income or expense.")
	f.StringVar(&cf.from, "from", "", "Inclusive start date (YYYY-MM-DD).")
	f.StringVar(&cf.to, "to", "", "Inclusive end date (YYYY-MM-DD).")
	f.StringVar(&cf.sortKey, "sort", "", "Sort key: transactionId, amount, category, type or date. Defaults to date.")
	f.BoolVar(&cf.sortDesc, "desc", false, "Sort descending. Defaults to descending only for the date key.")
}

func (cf *criteriaFlags) criteria() (query.Criteria, error) {
	c := query.DefaultCriteria()
	c.Search = cf.search

	switch cf.typ {
	case "", query.TypeAll:
		c.TypeFilter = query.TypeAll
	case query.TypeIncome, query.TypeExpense:
		c.TypeFilter = cf.typ
	default:
		return query.Criteria{}, fmt.Errorf("unknown type filter %q: must be all, income or expense", cf.typ)
	}

	if cf.from != "" && !core.ValidDate(cf.from) {
		return query.Criteria{}, fmt.Errorf("invalid -from date %q: want YYYY-MM-DD", cf.from)
	}
	if cf.to != "" && !core.ValidDate(cf.to) {
		return query.Criteria{}, fmt.Errorf("invalid -to date %q: want YYYY-MM-DD", cf.to)
	}
	c.StartDate = cf.from
	c.EndDate = cf.to

	if cf.sortKey != "" {
		switch key := query.SortKey(cf.sortKey); key {
		case query.SortByID, query.SortByAmount, query.SortByCategory, query.SortByType, query.SortByDate:
			c.Sort.Key = key
		default:
			return query.Criteria{}, fmt.Errorf("unknown sort key %q", cf.sortKey)
		}
	}
	if cf.sortDesc {
		c.Sort.Direction = query.Desc
	} else if cf.sortKey != "" {
		c.Sort.Direction = query.Asc
	}

	return c, nil
}

func renderTransactions(w io.Writer, txs []core.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "no transactions")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.TransactionID, tx.Date, tx.Type, tx.Category, tx.Amount, tx.Description)
	}
	tw.Flush()
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func usageError(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitUsageError
}
