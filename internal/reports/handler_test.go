package reports

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type fakeEntryStore struct {
	entries []Entry
	income  float64
	expense float64

	fromSeen time.Time
	toSeen   time.Time
}

func (f *fakeEntryStore) EntriesBetween(_ context.Context, _ string, from, to time.Time) ([]Entry, error) {
	f.fromSeen, f.toSeen = from, to
	return f.entries, nil
}

func (f *fakeEntryStore) TotalsBetween(_ context.Context, _ string, _, _ time.Time) (float64, float64, error) {
	return f.income, f.expense, nil
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
	app.Get("/reports/statement", h.Statement)
	app.Get("/reports/export", h.Export)
	return app
}

func sampleEntries() []Entry {
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	return []Entry{
		{Type: "income", ID: "i1", Name: "Salary", Amount: 900, Date: date, Category: "Salary"},
		{Type: "expense", ID: "e1", Name: "Groceries", Amount: 120.5, Date: date.AddDate(0, 0, -2), Category: "Food"},
	}
}

func TestStatementServesPDF(t *testing.T) {
	store := &fakeEntryStore{entries: sampleEntries(), income: 900, expense: 120.5}
	app := newTestApp(store, "u1")

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/statement?month=2025-07", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "statement-2025-07.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("response body is not a PDF document")
	}

	wantFrom := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if !store.fromSeen.Equal(wantFrom) {
		t.Errorf("window start = %v, want %v", store.fromSeen, wantFrom)
	}
	if !store.toSeen.Equal(wantFrom.AddDate(0, 1, 0)) {
		t.Errorf("window end = %v, want %v", store.toSeen, wantFrom.AddDate(0, 1, 0))
	}
}

func TestStatementRejectsBadMonth(t *testing.T) {
	app := newTestApp(&fakeEntryStore{}, "u1")

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/statement?month=July", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportWorkbookContents(t *testing.T) {
	store := &fakeEntryStore{entries: sampleEntries()}
	app := newTestApp(store, "u1")

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/export?month=2025-07", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(exportSheet, "C2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if got != "Salary" {
		t.Errorf("C2 = %q, want Salary", got)
	}
	if got, _ := f.GetCellValue(exportSheet, "A1"); got != "Type" {
		t.Errorf("A1 = %q, want Type", got)
	}
	if got, _ := f.GetCellValue(exportSheet, "A3"); got != "expense" {
		t.Errorf("A3 = %q, want expense", got)
	}
}

func TestReportsUnauthenticated(t *testing.T) {
	app := newTestApp(&fakeEntryStore{}, "")

	for _, path := range []string{"/reports/statement", "/reports/export"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, resp.StatusCode)
		}
	}
}
