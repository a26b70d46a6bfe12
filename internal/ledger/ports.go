package ledger

import (
	"context"

	"fintrack/internal/core"
)

// Ports for the remote ledger service.
type (
	Lister interface {
		// List returns every transaction owned by userID. A user with no
		// transactions yields an empty list, not an error.
		List(ctx context.Context, userID string) ([]core.Transaction, error)
	}

	Creator interface {
		Create(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	}

	Updater interface {
		// Update rewrites the editable fields of the transaction identified by
		// tx.UserID and tx.TransactionID.
		Update(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	}

	Deleter interface {
		Delete(ctx context.Context, userID, transactionID string) error
	}
)

// Ledger is the full client surface consumed by the mutation coordinator.
type Ledger interface {
	Lister
	Creator
	Updater
	Deleter
}
