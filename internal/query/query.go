package query

import (
	"sort"
	"strings"

	"fintrack/internal/core"
)

// Sort keys selectable by the presentation layer. Amount compares numerically;
// every other key compares as text.
const (
	SortByID       SortKey = "transactionId"
	SortByAmount   SortKey = "amount"
	SortByCategory SortKey = "category"
	SortByType     SortKey = "type"
	SortByDate     SortKey = "date"
)

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Type filter values. TypeAll disables the predicate.
const (
	TypeAll     = "all"
	TypeIncome  = string(core.Income)
	TypeExpense = string(core.Expense)
)

type (
	SortKey   string
	Direction string

	SortConfig struct {
		Key       SortKey
		Direction Direction
	}

	// Criteria is the ephemeral filter/sort state driving a view. It lives in
	// the presentation layer and is never sent to the server.
	Criteria struct {
		Search     string
		TypeFilter string // all | income | expense
		StartDate  string // inclusive, "" = unset
		EndDate    string // inclusive, "" = unset
		Sort       SortConfig
	}
)

// DefaultCriteria matches the initial state of the transaction list: no
// filters, newest first.
func DefaultCriteria() Criteria {
	return Criteria{
		TypeFilter: TypeAll,
		Sort:       SortConfig{Key: SortByDate, Direction: Desc},
	}
}

// Toggle applies the sort selection policy: picking the active key flips its
// direction, picking a different key resets to ascending.
func (sc SortConfig) Toggle(key SortKey) SortConfig {
	if sc.Key == key {
		d := Asc
		if sc.Direction == Asc {
			d = Desc
		}
		return SortConfig{Key: key, Direction: d}
	}
	return SortConfig{Key: key, Direction: Asc}
}

// View derives the filtered, sorted projection of txs under c. It is pure:
// the input slice is left untouched and a fresh slice is returned. The sort is
// stable, so records with equal keys keep their input order.
func View(txs []core.Transaction, c Criteria) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if Matches(tx, c) {
			out = append(out, tx)
		}
	}
	sortView(out, c.Sort)
	return out
}

// Matches reports whether tx satisfies every active predicate in c.
func Matches(tx core.Transaction, c Criteria) bool {
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(tx.Category), term) &&
			!strings.Contains(strings.ToLower(tx.Description), term) {
			return false
		}
	}
	if c.TypeFilter != "" && c.TypeFilter != TypeAll && string(tx.Type) != c.TypeFilter {
		return false
	}
	// Lexicographic comparison is correct on the fixed-width ISO date format.
	if c.StartDate != "" && tx.Date < c.StartDate {
		return false
	}
	if c.EndDate != "" && tx.Date > c.EndDate {
		return false
	}
	return true
}

func sortView(txs []core.Transaction, sc SortConfig) {
	if sc.Key == "" {
		return
	}
	sort.SliceStable(txs, func(i, j int) bool {
		less := lessByKey(txs[i], txs[j], sc.Key)
		if sc.Direction == Desc {
			return lessByKey(txs[j], txs[i], sc.Key)
		}
		return less
	})
}

func lessByKey(a, b core.Transaction, key SortKey) bool {
	if key == SortByAmount {
		return a.AmountValue() < b.AmountValue()
	}
	return textKey(a, key) < textKey(b, key)
}

func textKey(tx core.Transaction, key SortKey) string {
	switch key {
	case SortByID:
		return tx.TransactionID
	case SortByCategory:
		return tx.Category
	case SortByType:
		return string(tx.Type)
	case SortByDate:
		return tx.Date
	default:
		return ""
	}
}
