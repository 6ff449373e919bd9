package dashboard

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type fakeAggStore struct {
	summary  Summary
	expCats  []CategoryBucket
	incCats  []CategoryBucket
	trends   Trends
	incomes  []Transaction
	expenses []Transaction

	recentLimitSeen []int
}

func (f *fakeAggStore) Summary(_ context.Context, _ string) (Summary, error) {
	return f.summary, nil
}

func (f *fakeAggStore) ExpenseByCategory(_ context.Context, _ string) ([]CategoryBucket, error) {
	return f.expCats, nil
}

func (f *fakeAggStore) IncomeByCategory(_ context.Context, _ string) ([]CategoryBucket, error) {
	return f.incCats, nil
}

func (f *fakeAggStore) MonthlyTrends(_ context.Context, _ string, _ time.Time) (Trends, error) {
	return f.trends, nil
}

func (f *fakeAggStore) RecentIncomes(_ context.Context, _ string, limit int) ([]Transaction, error) {
	f.recentLimitSeen = append(f.recentLimitSeen, limit)
	if len(f.incomes) > limit {
		return f.incomes[:limit], nil
	}
	return f.incomes, nil
}

func (f *fakeAggStore) RecentExpenses(_ context.Context, _ string, limit int) ([]Transaction, error) {
	f.recentLimitSeen = append(f.recentLimitSeen, limit)
	if len(f.expenses) > limit {
		return f.expenses[:limit], nil
	}
	return f.expenses, nil
}

func newTestApp(store Store, userID string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})

	h := NewHandler(store)
	app.Get("/dashboard/summary", h.Summary)
	app.Get("/dashboard/expense-by-category", h.ExpenseByCategory)
	app.Get("/dashboard/income-by-category", h.IncomeByCategory)
	app.Get("/dashboard/monthly-trends", h.MonthlyTrends)
	app.Get("/dashboard/recent-transactions", h.RecentTransactions)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestSummaryEnvelope(t *testing.T) {
	store := &fakeAggStore{summary: Summary{
		TotalIncome: 900, TotalExpense: 250, Balance: 650,
		IncomeCount: 3, ExpenseCount: 2, ActiveAutomations: 1,
	}}
	app := newTestApp(store, "u1")

	status, body := get(t, app, "/dashboard/summary")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := body["data"].(map[string]interface{})
	if data["balance"].(float64) != 650 {
		t.Errorf("balance = %v, want 650", data["balance"])
	}
	if data["activeAutomations"].(float64) != 1 {
		t.Errorf("activeAutomations = %v, want 1", data["activeAutomations"])
	}
}

func TestSummaryEmptyLedger(t *testing.T) {
	app := newTestApp(&fakeAggStore{}, "u1")

	status, body := get(t, app, "/dashboard/summary")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := body["data"].(map[string]interface{})
	for _, field := range []string{"totalIncome", "totalExpense", "balance"} {
		if data[field].(float64) != 0 {
			t.Errorf("%s = %v, want 0", field, data[field])
		}
	}
}

func TestRecentTransactionsFetchesBoundedCandidates(t *testing.T) {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeAggStore{}
	for i := 0; i < 8; i++ {
		store.incomes = append(store.incomes, tx("income", i, base.AddDate(0, 0, -i)))
		store.expenses = append(store.expenses, tx("expense", i, base.AddDate(0, 0, -i)))
	}
	app := newTestApp(store, "u1")

	status, body := get(t, app, "/dashboard/recent-transactions")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	for _, limit := range store.recentLimitSeen {
		if limit != candidatesPerVariant {
			t.Errorf("variant fetch limit = %d, want %d", limit, candidatesPerVariant)
		}
	}

	items := body["data"].([]interface{})
	if len(items) > recentLimit {
		t.Errorf("merged length = %d, want at most %d", len(items), recentLimit)
	}
}

func TestDashboardUnauthenticated(t *testing.T) {
	app := newTestApp(&fakeAggStore{}, "")

	for _, path := range []string{
		"/dashboard/summary",
		"/dashboard/expense-by-category",
		"/dashboard/income-by-category",
		"/dashboard/monthly-trends",
		"/dashboard/recent-transactions",
	} {
		status, _ := get(t, app, path)
		if status != fiber.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, status)
		}
	}
}
