package dashboard

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
)

// trendWindowMonths is the trailing window for monthly trends.
const trendWindowMonths = 6

// Store is the read-only aggregation access the handler needs;
// implemented by Repo.
type Store interface {
	Summary(ctx context.Context, userID string) (Summary, error)
	ExpenseByCategory(ctx context.Context, userID string) ([]CategoryBucket, error)
	IncomeByCategory(ctx context.Context, userID string) ([]CategoryBucket, error)
	MonthlyTrends(ctx context.Context, userID string, since time.Time) (Trends, error)
	RecentIncomes(ctx context.Context, userID string, limit int) ([]Transaction, error)
	RecentExpenses(ctx context.Context, userID string, limit int) ([]Transaction, error)
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) Summary(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	s, err := h.Store.Summary(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard summary")
	}

	return c.JSON(fiber.Map{
		"message": "Dashboard summary fetched successfully",
		"data":    s,
	})
}

func (h *Handler) ExpenseByCategory(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	buckets, err := h.Store.ExpenseByCategory(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch category breakdown")
	}

	return c.JSON(fiber.Map{
		"message": "Category breakdown fetched successfully",
		"data":    buckets,
	})
}

func (h *Handler) IncomeByCategory(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	buckets, err := h.Store.IncomeByCategory(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch income category breakdown")
	}

	return c.JSON(fiber.Map{
		"message": "Income category breakdown fetched successfully",
		"data":    buckets,
	})
}

func (h *Handler) MonthlyTrends(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	since := time.Now().AddDate(0, -trendWindowMonths, 0)
	trends, err := h.Store.MonthlyTrends(userContext(c), userID, since)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch monthly trends")
	}

	return c.JSON(fiber.Map{
		"message": "Monthly trends fetched successfully",
		"data":    trends,
	})
}

func (h *Handler) RecentTransactions(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ctx := userContext(c)
	incomes, err := h.Store.RecentIncomes(ctx, userID, candidatesPerVariant)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch recent transactions")
	}
	expenses, err := h.Store.RecentExpenses(ctx, userID, candidatesPerVariant)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch recent transactions")
	}

	return c.JSON(fiber.Map{
		"message": "Recent transactions fetched successfully",
		"data":    mergeRecent(incomes, expenses),
	})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
