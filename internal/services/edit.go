package services

import (
	"context"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// EditBuffer is a scratch copy of one transaction's editable fields, held
// while an edit is being composed. Nothing is sent until an explicit submit;
// cancelling discards the buffer without a network call.
type EditBuffer struct {
	UserID        string
	TransactionID string
	Amount        string
	Category      string
	Type          core.TransactionType
	Date          string
	Description   string
}

func bufferFrom(tx core.Transaction) *EditBuffer {
	return &EditBuffer{
		UserID:        tx.UserID,
		TransactionID: tx.TransactionID,
		Amount:        tx.Amount,
		Category:      tx.Category,
		Type:          tx.Type,
		Date:          tx.Date,
		Description:   tx.Description,
	}
}

func (b *EditBuffer) transaction() core.Transaction {
	return core.Transaction{
		UserID:        b.UserID,
		TransactionID: b.TransactionID,
		Amount:        b.Amount,
		Category:      b.Category,
		Type:          b.Type,
		Date:          b.Date,
		Description:   b.Description,
	}
}

// BeginEdit stages a copy of tx for editing. Only one buffer exists at a time.
func (c *Coordinator) BeginEdit(tx core.Transaction) (*EditBuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit != nil {
		return nil, ErrEditInProgress
	}
	c.edit = bufferFrom(tx)
	return c.edit, nil
}

// Edit returns the current staging buffer, if any.
func (c *Coordinator) Edit() *EditBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.edit
}

// CancelEdit discards the staging buffer. No request is issued.
func (c *Coordinator) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edit == nil {
		return ErrNoEditInProgress
	}
	c.edit = nil
	return nil
}

// SubmitEdit sends the staged fields as an update and, on success,
// resynchronizes the snapshot and discards the buffer. On failure the buffer
// stays open with its unsaved values and the snapshot is untouched.
func (c *Coordinator) SubmitEdit(ctx context.Context) error {
	c.mu.Lock()
	buf := c.edit
	c.mu.Unlock()
	if buf == nil {
		return ErrNoEditInProgress
	}

	tx := buf.transaction()
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := c.begin(ClassList); err != nil {
		return err
	}
	defer c.end(ClassList)

	if _, err := c.client.Update(ctx, tx); err != nil {
		slog.ErrorContext(ctx, "Update transaction failed",
			log.FieldUserID, tx.UserID, log.FieldTransactionID, tx.TransactionID, log.FieldError, err)
		return err
	}

	c.mu.Lock()
	c.edit = nil
	c.mu.Unlock()

	slog.InfoContext(ctx, "Transaction updated",
		log.FieldUserID, tx.UserID, log.FieldTransactionID, tx.TransactionID)
	return c.refresh(ctx, tx.UserID, "update")
}
