package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is the atomic ledger record. Amount and Date keep their
	// textual wire form; use AmountValue for arithmetic and comparison.
	Transaction struct {
		UserID        string
		TransactionID string
		Amount        string
		Category      string
		Type          TransactionType
		Date          string // ISO 8601, YYYY-MM-DD
		Description   string
	}
)

var (
	ErrMissingUserID        = errors.New("missing user id")
	ErrMissingTransactionID = errors.New("missing transaction id")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrInvalidDate          = errors.New("invalid date")
	ErrEmptyCategory        = errors.New("empty category")
)

// DateFormat is the fixed-width, zero-padded form every transaction date uses.
// Because the format is fixed-width, plain string comparison orders dates
// correctly; nothing in this package compares dates any other way.
const DateFormat = "2006-01-02"

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string { return string(t) }

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if len(s) != len(DateFormat) {
		return false
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// ParseAmount interprets the textual amount numerically. The sign is not
// constrained: the transaction type governs semantics, not the sign.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// AmountValue returns the numeric amount, or 0 when the text does not parse.
// Sorting and aggregation use this coercion.
func (tx Transaction) AmountValue() float64 {
	v, err := ParseAmount(tx.Amount)
	if err != nil {
		return 0
	}
	return v
}

// Validate checks the fields required before a transaction may be sent to the
// ledger. Description is optional.
func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(tx.TransactionID) == "" {
		return ErrMissingTransactionID
	}
	if _, err := ParseAmount(tx.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if !tx.Type.IsValid() {
		return ErrInvalidType
	}
	if !ValidDate(tx.Date) {
		return ErrInvalidDate
	}
	return nil
}
