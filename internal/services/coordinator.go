package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/snapshot"
)

// MutationClass identifies the logical resource class a mutation belongs to.
// The create form and the list's edit/delete operate independently, but each
// class serializes its own calls.
type MutationClass string

const (
	// ClassCreate covers new-transaction submissions.
	ClassCreate MutationClass = "create"
	// ClassList covers the list's own edit and delete operations.
	ClassList MutationClass = "list"
)

// MutationState is the observable state of a mutation class. A class is
// Pending from the moment its request is issued until the post-success
// refresh (or the failure) completes; there is no cancelled state because an
// in-flight request cannot be aborted.
type MutationState string

const (
	StateIdle    MutationState = "idle"
	StatePending MutationState = "pending"
)

var (
	// ErrMutationInFlight is returned when a mutation is initiated while
	// another of the same class is still pending.
	ErrMutationInFlight = errors.New("another mutation is already in flight")
	// ErrEditInProgress is returned by BeginEdit while a staging buffer exists.
	ErrEditInProgress = errors.New("an edit is already in progress")
	// ErrNoEditInProgress is returned by SubmitEdit and CancelEdit without a buffer.
	ErrNoEditInProgress = errors.New("no edit in progress")
)

// ConfirmFunc asks the user to confirm a destructive action. Deletion issues
// no request when it returns false.
type ConfirmFunc func() bool

// Coordinator sequences mutations against the remote ledger with the cache
// refresh discipline: every successful create/update/delete triggers a full
// re-list that replaces the snapshot, and a failure leaves the snapshot
// untouched. The snapshot is never patched locally.
type Coordinator struct {
	client ledger.Ledger
	cache  *snapshot.Store

	mu      sync.Mutex
	pending map[MutationClass]bool
	edit    *EditBuffer

	// Overlapping refreshes for the same user collapse into one list call.
	fetchGroup singleflight.Group
}

func NewCoordinator(client ledger.Ledger, cache *snapshot.Store) *Coordinator {
	return &Coordinator{
		client:  client,
		cache:   cache,
		pending: make(map[MutationClass]bool),
	}
}

// Cache exposes the snapshot store for view derivation.
func (c *Coordinator) Cache() *snapshot.Store { return c.cache }

// State reports whether a mutation of the given class is in flight, for the
// presentation layer's loading indicator.
func (c *Coordinator) State(class MutationClass) MutationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[class] {
		return StatePending
	}
	return StateIdle
}

// Fetch lists the user's transactions and replaces the snapshot. A failed
// fetch keeps the prior snapshot so existing results stay on screen.
func (c *Coordinator) Fetch(ctx context.Context, userID string) ([]core.Transaction, error) {
	if userID == "" {
		return nil, core.ErrMissingUserID
	}

	v, err, _ := c.fetchGroup.Do(userID, func() (any, error) {
		items, err := c.client.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		c.cache.Replace(userID, items)
		return items, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "Fetch transactions failed", log.FieldUserID, userID, log.FieldError, err)
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	items := v.([]core.Transaction)
	slog.DebugContext(ctx, "Snapshot replaced", log.FieldUserID, userID, log.FieldCount, len(items))
	return items, nil
}

// Create submits a new transaction and, on success, resynchronizes the
// snapshot from the server. Validation gaps are rejected before any request.
func (c *Coordinator) Create(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := c.begin(ClassCreate); err != nil {
		return err
	}
	defer c.end(ClassCreate)

	if _, err := c.client.Create(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "Create transaction failed",
			log.FieldUserID, tx.UserID, log.FieldTransactionID, tx.TransactionID, log.FieldError, err)
		return err
	}

	slog.InfoContext(ctx, "Transaction created",
		log.FieldUserID, tx.UserID, log.FieldTransactionID, tx.TransactionID)
	return c.refresh(ctx, tx.UserID, "create")
}

// Delete asks for confirmation, then removes the transaction and
// resynchronizes. A declined confirmation issues no request and is not an
// error; the boolean reports whether the deletion happened.
func (c *Coordinator) Delete(ctx context.Context, userID, transactionID string, confirm ConfirmFunc) (bool, error) {
	if userID == "" {
		return false, core.ErrMissingUserID
	}
	if transactionID == "" {
		return false, core.ErrMissingTransactionID
	}
	if confirm == nil || !confirm() {
		slog.DebugContext(ctx, "Delete declined", log.FieldTransactionID, transactionID)
		return false, nil
	}
	if err := c.begin(ClassList); err != nil {
		return false, err
	}
	defer c.end(ClassList)

	if err := c.client.Delete(ctx, userID, transactionID); err != nil {
		slog.ErrorContext(ctx, "Delete transaction failed",
			log.FieldUserID, userID, log.FieldTransactionID, transactionID, log.FieldError, err)
		return false, err
	}

	slog.InfoContext(ctx, "Transaction deleted",
		log.FieldUserID, userID, log.FieldTransactionID, transactionID)
	if err := c.refresh(ctx, userID, "delete"); err != nil {
		return true, err
	}
	return true, nil
}

// refresh re-lists the user's transactions after a successful mutation. The
// mutation itself already succeeded; a refresh failure only means the
// snapshot still shows the pre-mutation server state.
func (c *Coordinator) refresh(ctx context.Context, userID, op string) error {
	_, err, _ := c.fetchGroup.Do(userID, func() (any, error) {
		items, err := c.client.List(ctx, userID)
		if err != nil {
			return nil, err
		}
		c.cache.Replace(userID, items)
		return items, nil
	})
	if err != nil {
		slog.WarnContext(ctx, "Refresh after mutation failed",
			log.FieldUserID, userID, log.FieldOperation, op, log.FieldError, err)
		return fmt.Errorf("refresh after %s: %w", op, err)
	}
	return nil
}

// begin marks a mutation class pending, rejecting a second initiation.
func (c *Coordinator) begin(class MutationClass) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[class] {
		return ErrMutationInFlight
	}
	c.pending[class] = true
	return nil
}

func (c *Coordinator) end(class MutationClass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[class] = false
}
