package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
	"github.com/GungunSharma0502/Expense-tracker/internal/domain"
	"github.com/GungunSharma0502/Expense-tracker/internal/money"
)

// Store is the ledger access the handler needs; implemented by Repository.
type Store interface {
	Insert(ctx context.Context, exp *Expense) error
	ListByUser(ctx context.Context, userID string) ([]Expense, error)
	GetByID(ctx context.Context, userID, id string) (*Expense, error)
	Update(ctx context.Context, userID, id string, patch Patch) (*Expense, error)
	Delete(ctx context.Context, userID, id string) (*Expense, error)
	SumByUser(ctx context.Context, userID string) (float64, error)
}

// IncomeChecker gates expense creation: spending can only be recorded once
// at least one income entry exists. Implemented by income.Repository.
type IncomeChecker interface {
	HasAny(ctx context.Context, userID string) (bool, error)
}

type Handler struct {
	Store   Store
	Incomes IncomeChecker
}

func NewHandler(store Store, incomes IncomeChecker) *Handler {
	return &Handler{Store: store, Incomes: incomes}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	hasIncome, err := h.Incomes.HasAny(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add expense")
	}
	if !hasIncome {
		return fiber.NewError(fiber.StatusBadRequest, "Please add income first before adding expenses")
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Amount == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Expense name and amount are required")
	}
	if len(req.Name) > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "Name must not exceed 100 characters")
	}
	if money.Validate(req.Amount) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}
	if len(req.Description) > 300 {
		return fiber.NewError(fiber.StatusBadRequest, "Description must not exceed 300 characters")
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	if !domain.ValidExpenseCategory(category) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid expense category")
	}

	date := time.Now()
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD or RFC 3339")
		}
		date = parsed
	}

	exp := &Expense{
		UserID:      userID,
		Name:        req.Name,
		Amount:      money.Round2(req.Amount),
		Date:        date,
		Category:    category,
		Description: req.Description,
	}

	if err := h.Store.Insert(userContext(c), exp); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add expense")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Expense added successfully",
		"data":    exp,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	expenses, err := h.Store.ListByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch expenses")
	}

	return c.JSON(fiber.Map{
		"message": "Expenses fetched successfully",
		"count":   len(expenses),
		"data":    expenses,
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}

	exp, err := h.Store.GetByID(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch expense")
	}

	return c.JSON(fiber.Map{
		"message": "Expense fetched successfully",
		"data":    exp,
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	patch, err := buildPatch(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	exp, err := h.Store.Update(userContext(c), userID, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update expense")
	}

	return c.JSON(fiber.Map{
		"message": "Expense updated successfully",
		"data":    exp,
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Expense not found")
	}

	exp, err := h.Store.Delete(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete expense")
	}

	return c.JSON(fiber.Map{
		"message": "Expense deleted successfully",
		"data":    exp,
	})
}

func (h *Handler) Total(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	total, err := h.Store.SumByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to calculate total expense")
	}

	return c.JSON(fiber.Map{
		"message": "Total expense calculated successfully",
		"data":    fiber.Map{"totalExpense": total},
	})
}

func buildPatch(req UpdateRequest) (Patch, error) {
	var patch Patch

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Patch{}, errors.New("Name cannot be empty")
		}
		if len(name) > 100 {
			return Patch{}, errors.New("Name must not exceed 100 characters")
		}
		patch.Name = &name
	}
	if req.Amount != nil {
		if money.Validate(*req.Amount) != nil {
			return Patch{}, errors.New("Amount must be greater than 0")
		}
		amount := money.Round2(*req.Amount)
		patch.Amount = &amount
	}
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return Patch{}, errors.New("date must be YYYY-MM-DD or RFC 3339")
		}
		patch.Date = &parsed
	}
	if req.Category != nil {
		if !domain.ValidExpenseCategory(*req.Category) {
			return Patch{}, errors.New("Invalid expense category")
		}
		patch.Category = req.Category
	}
	if req.Description != nil {
		if len(*req.Description) > 300 {
			return Patch{}, errors.New("Description must not exceed 300 characters")
		}
		patch.Description = req.Description
	}

	return patch, nil
}

func entryID(c *fiber.Ctx) (string, bool) {
	id := strings.TrimSpace(c.Params("id"))
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
