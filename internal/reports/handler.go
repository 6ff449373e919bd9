package reports

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
)

// Store is the read surface statements and exports are built from.
type Store interface {
	EntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]Entry, error)
	TotalsBetween(ctx context.Context, userID string, from, to time.Time) (income, expense float64, err error)
}

type Handler struct {
	Entries Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Entries: store}
}

// Statement serves the month's activity as a PDF attachment. The month
// defaults to the current one.
func (h *Handler) Statement(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please login to continue.")
	}

	from, to, label, err := monthWindow(c.Query("month"))
	if err != nil {
		return err
	}

	ctx := userContext(c)
	entries, err := h.Entries.EntriesBetween(ctx, userID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not build statement")
	}
	totalIncome, totalExpense, err := h.Entries.TotalsBetween(ctx, userID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not build statement")
	}

	out, err := buildStatementPDF(maskID(userID), label, entries, totalIncome, totalExpense)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not build statement")
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="statement-`+label+`.pdf"`)
	return c.Send(out)
}

// Export serves the month's activity as an XLSX attachment.
func (h *Handler) Export(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please login to continue.")
	}

	from, to, label, err := monthWindow(c.Query("month"))
	if err != nil {
		return err
	}

	entries, err := h.Entries.EntriesBetween(userContext(c), userID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
	}

	out, err := buildWorkbook(entries)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="transactions-`+label+`.xlsx"`)
	return c.Send(out)
}

// monthWindow parses an optional YYYY-MM query into a half-open range.
func monthWindow(raw string) (from, to time.Time, label string, err error) {
	raw = strings.TrimSpace(raw)
	now := time.Now().UTC()
	if raw == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		from, err = time.Parse("2006-01", raw)
		if err != nil {
			return time.Time{}, time.Time{}, "", fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
		}
	}
	return from, from.AddDate(0, 1, 0), from.Format("2006-01"), nil
}

func maskID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:4] + "…" + id[len(id)-4:]
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
