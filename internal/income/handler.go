package income

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
	Insert(ctx context.Context, inc *Income) error
	ListByUser(ctx context.Context, userID string) ([]Income, error)
	GetByID(ctx context.Context, userID, id string) (*Income, error)
	Update(ctx context.Context, userID, id string, patch Patch) (*Income, error)
	Delete(ctx context.Context, userID, id string) (*Income, error)
	SumByUser(ctx context.Context, userID string) (float64, error)
}

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Amount == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Income name and amount are required")
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
	if !domain.ValidIncomeCategory(category) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid income category")
	}

	date := time.Now()
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD or RFC 3339")
		}
		date = parsed
	}

	inc := &Income{
		UserID:      userID,
		Name:        req.Name,
		Amount:      money.Round2(req.Amount),
		Date:        date,
		Category:    category,
		Description: req.Description,
	}

	if err := h.Store.Insert(userContext(c), inc); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add income")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Income added successfully",
		"data":    inc,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	incomes, err := h.Store.ListByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch incomes")
	}

	return c.JSON(fiber.Map{
		"message": "Incomes fetched successfully",
		"count":   len(incomes),
		"data":    incomes,
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Income not found")
	}

	inc, err := h.Store.GetByID(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Income not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch income")
	}

	return c.JSON(fiber.Map{
		"message": "Income fetched successfully",
		"data":    inc,
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Income not found")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	patch, err := buildPatch(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	inc, err := h.Store.Update(userContext(c), userID, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Income not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update income")
	}

	return c.JSON(fiber.Map{
		"message": "Income updated successfully",
		"data":    inc,
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Income not found")
	}

	inc, err := h.Store.Delete(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Income not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete income")
	}

	return c.JSON(fiber.Map{
		"message": "Income deleted successfully",
		"data":    inc,
	})
}

func (h *Handler) Total(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	total, err := h.Store.SumByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to calculate total income")
	}

	return c.JSON(fiber.Map{
		"message": "Total income calculated successfully",
		"data":    fiber.Map{"totalIncome": total},
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
		if !domain.ValidIncomeCategory(*req.Category) {
			return Patch{}, errors.New("Invalid income category")
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

// entryID validates the :id path parameter. A malformed id is
// indistinguishable from a missing record.
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
