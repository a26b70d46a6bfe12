package query

import (
	"testing"

	"fintrack/internal/core"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{TransactionID: "1", Type: core.Expense, Category: "Food", Amount: "20", Date: "2024-01-05", Description: "lunch"},
		{TransactionID: "2", Type: core.Income, Category: "Salary", Amount: "1000", Date: "2024-01-10"},
		{TransactionID: "3", Type: core.Expense, Category: "Transport", Amount: "9.5", Date: "2024-01-03", Description: "bus ticket"},
		{TransactionID: "4", Type: core.Expense, Category: "Food", Amount: "120", Date: "2024-02-01", Description: "groceries"},
	}
}

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.TransactionID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestView_Filtering(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "no criteria keeps everything",
			criteria: Criteria{TypeFilter: TypeAll},
			want:     []string{"1", "2", "3", "4"},
		},
		{
			name:     "type filter expense",
			criteria: Criteria{TypeFilter: TypeExpense},
			want:     []string{"1", "3", "4"},
		},
		{
			name:     "type filter income",
			criteria: Criteria{TypeFilter: TypeIncome},
			want:     []string{"2"},
		},
		{
			name:     "search matches category case-insensitively",
			criteria: Criteria{TypeFilter: TypeAll, Search: "food"},
			want:     []string{"1", "4"},
		},
		{
			name:     "search matches description",
			criteria: Criteria{TypeFilter: TypeAll, Search: "TICKET"},
			want:     []string{"3"},
		},
		{
			name:     "date range inclusive at both ends",
			criteria: Criteria{TypeFilter: TypeAll, StartDate: "2024-01-03", EndDate: "2024-01-10"},
			want:     []string{"1", "2", "3"},
		},
		{
			name:     "start date only",
			criteria: Criteria{TypeFilter: TypeAll, StartDate: "2024-01-06"},
			want:     []string{"2", "4"},
		},
		{
			name:     "end date only",
			criteria: Criteria{TypeFilter: TypeAll, EndDate: "2024-01-04"},
			want:     []string{"3"},
		},
		{
			name:     "predicates combine with AND",
			criteria: Criteria{TypeFilter: TypeExpense, Search: "food", EndDate: "2024-01-31"},
			want:     []string{"1"},
		},
		{
			name:     "nothing matches",
			criteria: Criteria{TypeFilter: TypeIncome, Search: "food"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sample()
			got := View(in, tt.criteria)

			if !equalIDs(ids(got), tt.want...) {
				t.Fatalf("View() = %v, want %v", ids(got), tt.want)
			}
			// No false positives: every record in the view satisfies the criteria.
			for _, tx := range got {
				if !Matches(tx, tt.criteria) {
					t.Errorf("view contains %q which does not satisfy the criteria", tx.TransactionID)
				}
			}
			// No false negatives: every satisfying source record appears.
			for _, tx := range in {
				if Matches(tx, tt.criteria) {
					found := false
					for _, v := range got {
						if v.TransactionID == tx.TransactionID {
							found = true
						}
					}
					if !found {
						t.Errorf("view is missing %q", tx.TransactionID)
					}
				}
			}
		})
	}
}

func TestView_DoesNotMutateInput(t *testing.T) {
	in := sample()
	View(in, Criteria{TypeFilter: TypeAll, Sort: SortConfig{Key: SortByAmount, Direction: Desc}})
	if !equalIDs(ids(in), "1", "2", "3", "4") {
		t.Fatalf("input order changed: %v", ids(in))
	}
}

func TestView_Sorting(t *testing.T) {
	tests := []struct {
		name string
		sort SortConfig
		want []string
	}{
		{name: "amount asc is numeric", sort: SortConfig{Key: SortByAmount, Direction: Asc}, want: []string{"3", "1", "4", "2"}},
		{name: "amount desc", sort: SortConfig{Key: SortByAmount, Direction: Desc}, want: []string{"2", "4", "1", "3"}},
		{name: "date asc", sort: SortConfig{Key: SortByDate, Direction: Asc}, want: []string{"3", "1", "2", "4"}},
		{name: "date desc", sort: SortConfig{Key: SortByDate, Direction: Desc}, want: []string{"4", "2", "1", "3"}},
		{name: "category asc keeps ties stable", sort: SortConfig{Key: SortByCategory, Direction: Asc}, want: []string{"1", "4", "2", "3"}},
		{name: "id asc", sort: SortConfig{Key: SortByID, Direction: Asc}, want: []string{"1", "2", "3", "4"}},
		{name: "type desc", sort: SortConfig{Key: SortByType, Direction: Desc}, want: []string{"2", "1", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := View(sample(), Criteria{TypeFilter: TypeAll, Sort: tt.sort})
			if !equalIDs(ids(got), tt.want...) {
				t.Fatalf("View() order = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

// Lexicographic amount sorting would put "9.5" after "120"; the numeric
// coercion must not.
func TestView_AmountSortIsNotLexicographic(t *testing.T) {
	got := View(sample(), Criteria{TypeFilter: TypeAll, Sort: SortConfig{Key: SortByAmount, Direction: Asc}})
	if got[0].TransactionID != "3" {
		t.Fatalf("smallest amount should come first, got %v", ids(got))
	}
}

func TestSortConfig_Toggle(t *testing.T) {
	sc := SortConfig{Key: SortByDate, Direction: Desc}

	// A different key resets to ascending.
	sc = sc.Toggle(SortByAmount)
	if sc.Key != SortByAmount || sc.Direction != Asc {
		t.Fatalf("Toggle(new key) = %+v, want amount/asc", sc)
	}

	// The same key flips direction.
	sc = sc.Toggle(SortByAmount)
	if sc.Direction != Desc {
		t.Fatalf("Toggle(same key) = %+v, want desc", sc)
	}

	// A third toggle returns to the first ordering.
	sc = sc.Toggle(SortByAmount)
	if sc.Direction != Asc {
		t.Fatalf("third Toggle = %+v, want asc", sc)
	}
}

func TestToggle_ReversesOrdering(t *testing.T) {
	base := DefaultCriteria()
	base.Sort = base.Sort.Toggle(SortByAmount) // amount asc

	once := View(sample(), base)

	base.Sort = base.Sort.Toggle(SortByAmount) // amount desc
	twice := View(sample(), base)

	for i := range once {
		j := len(twice) - 1 - i
		if once[i].TransactionID != twice[j].TransactionID {
			t.Fatalf("toggled sort is not the reverse: %v vs %v", ids(once), ids(twice))
		}
	}
}

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria()
	if c.TypeFilter != TypeAll {
		t.Errorf("TypeFilter = %q, want %q", c.TypeFilter, TypeAll)
	}
	if c.Sort.Key != SortByDate || c.Sort.Direction != Desc {
		t.Errorf("Sort = %+v, want date/desc", c.Sort)
	}
}
