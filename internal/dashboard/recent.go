package dashboard

import "sort"

// candidatesPerVariant bounds how many entries each ledger contributes to
// the merged recent view. The merge is therefore an approximation: a burst
// of same-day entries in one variant can push genuinely newer entries of
// that variant out of its own candidate window.
const candidatesPerVariant = 5

// recentLimit caps the merged view.
const recentLimit = 10

// mergeRecent combines the per-variant candidate lists, newest first, and
// truncates to the overall cap. Inputs are expected to already be sorted
// newest first and bounded by candidatesPerVariant.
func mergeRecent(incomes, expenses []Transaction) []Transaction {
	merged := make([]Transaction, 0, len(incomes)+len(expenses))
	merged = append(merged, incomes...)
	merged = append(merged, expenses...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	if len(merged) > recentLimit {
		merged = merged[:recentLimit]
	}
	return merged
}
