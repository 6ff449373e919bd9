package dashboard

import (
	"fmt"
	"testing"
	"time"
)

func tx(typ string, n int, date time.Time) Transaction {
	return Transaction{
		Type:   typ,
		ID:     fmt.Sprintf("%s-%d", typ, n),
		Name:   fmt.Sprintf("%s %d", typ, n),
		Amount: float64(n),
		Date:   date,
	}
}

func TestMergeRecentSortsAndTruncates(t *testing.T) {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	var incomes, expenses []Transaction
	for i := 0; i < candidatesPerVariant; i++ {
		incomes = append(incomes, tx("income", i, base.AddDate(0, 0, -i)))
		expenses = append(expenses, tx("expense", i, base.AddDate(0, 0, -i).Add(-time.Hour)))
	}

	merged := mergeRecent(incomes, expenses)
	if len(merged) != recentLimit {
		t.Fatalf("len = %d, want %d", len(merged), recentLimit)
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Date.After(merged[i-1].Date) {
			t.Fatalf("merged[%d] newer than merged[%d]", i, i-1)
		}
	}
}

func TestMergeRecentEmptyVariants(t *testing.T) {
	if got := mergeRecent(nil, nil); len(got) != 0 {
		t.Errorf("merge of empty inputs = %d entries", len(got))
	}

	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	only := []Transaction{tx("income", 1, base)}
	got := mergeRecent(only, nil)
	if len(got) != 1 || got[0].Type != "income" {
		t.Errorf("single-variant merge = %v", got)
	}
}

// The merge is a bounded-candidate approximation: each variant contributes
// at most five entries, fetched independently, before the final sort and
// truncate. A sixth very recent income never enters the merge because it
// falls outside its own variant's candidate window, even though it is newer
// than every expense candidate.
func TestMergeRecentBoundedCandidateLimitation(t *testing.T) {
	base := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)

	// Six incomes newer than all old expenses; the store-side LIMIT keeps
	// only the newest five, so income-5 (the oldest of the six) is cut.
	var allIncomes []Transaction
	for i := 0; i < 6; i++ {
		allIncomes = append(allIncomes, tx("income", i, base.Add(-time.Duration(i)*time.Minute)))
	}
	incomeCandidates := allIncomes[:candidatesPerVariant]

	// One fresh expense plus five stale ones; the candidate window keeps
	// the fresh one and four stale.
	expenseCandidates := []Transaction{tx("expense", 0, base.Add(-30 * time.Second))}
	for i := 1; i < 6; i++ {
		expenseCandidates = append(expenseCandidates, tx("expense", i, base.AddDate(0, -1, -i)))
	}
	expenseCandidates = expenseCandidates[:candidatesPerVariant]

	merged := mergeRecent(incomeCandidates, expenseCandidates)
	if len(merged) != recentLimit {
		t.Fatalf("len = %d, want %d", len(merged), recentLimit)
	}

	for _, m := range merged {
		if m.ID == "income-5" {
			t.Error("income-5 made it into the merge despite the per-variant cap")
		}
	}
	// The fresh expense outranks the stale ones and survives.
	found := false
	for _, m := range merged {
		if m.ID == "expense-0" {
			found = true
		}
	}
	if !found {
		t.Error("expense-0 missing from merge")
	}
	// Stale expenses fill the tail: the merge includes entries older than
	// the excluded income-5, which is the documented approximation.
	if merged[len(merged)-1].Date.After(allIncomes[5].Date) {
		t.Error("expected the tail to be older than the excluded income candidate")
	}
}
