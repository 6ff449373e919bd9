package domain

// Closed vocabularies for ledger categories and automation frequencies.
// Writes carrying values outside these sets are rejected at the handler
// boundary before they reach the store.

const DefaultCategory = "Other"

var incomeCategories = map[string]struct{}{
	"Salary":     {},
	"Freelance":  {},
	"Business":   {},
	"Investment": {},
	"Gift":       {},
	"Other":      {},
}

var expenseCategories = map[string]struct{}{
	"Food":          {},
	"Transport":     {},
	"Shopping":      {},
	"Bills":         {},
	"Healthcare":    {},
	"Entertainment": {},
	"Education":     {},
	"Other":         {},
}

var frequencies = map[string]struct{}{
	"Daily":   {},
	"Weekly":  {},
	"Monthly": {},
	"Yearly":  {},
}

func ValidIncomeCategory(c string) bool {
	_, ok := incomeCategories[c]
	return ok
}

// ValidExpenseCategory also covers automation categories, which share the
// expense vocabulary.
func ValidExpenseCategory(c string) bool {
	_, ok := expenseCategories[c]
	return ok
}

func ValidFrequency(f string) bool {
	_, ok := frequencies[f]
	return ok
}
