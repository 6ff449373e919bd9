package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
	"github.com/GungunSharma0502/Expense-tracker/internal/domain"
	"github.com/GungunSharma0502/Expense-tracker/internal/expense"
	"github.com/GungunSharma0502/Expense-tracker/internal/money"
)

// Store is the registry access the handler needs; implemented by Repository.
type Store interface {
	Insert(ctx context.Context, a *Automation) error
	ListByUser(ctx context.Context, userID string) ([]Automation, error)
	GetByID(ctx context.Context, userID, id string) (*Automation, error)
	Update(ctx context.Context, userID, id string, patch Patch) (*Automation, error)
	Delete(ctx context.Context, userID, id string) (*Automation, error)
	Toggle(ctx context.Context, userID, id string) (*Automation, error)
	StampProcessed(ctx context.Context, userID, id string, at time.Time) (*Automation, error)
}

// ExpenseWriter materializes an automation into a ledger entry.
// Implemented by expense.Repository.
type ExpenseWriter interface {
	Insert(ctx context.Context, exp *expense.Expense) error
}

type Handler struct {
	Store    Store
	Expenses ExpenseWriter
}

func NewHandler(store Store, expenses ExpenseWriter) *Handler {
	return &Handler{Store: store, Expenses: expenses}
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
	if req.Name == "" || req.Amount == 0 || req.Frequency == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name, amount and frequency are required")
	}
	if len(req.Name) > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "Name must not exceed 100 characters")
	}
	if money.Validate(req.Amount) != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than 0")
	}
	if !domain.ValidFrequency(req.Frequency) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid frequency")
	}
	if len(req.Description) > 300 {
		return fiber.NewError(fiber.StatusBadRequest, "Description must not exceed 300 characters")
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	if !domain.ValidExpenseCategory(category) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid category")
	}

	startDate := time.Now()
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "startDate must be YYYY-MM-DD or RFC 3339")
		}
		startDate = parsed
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "endDate must be YYYY-MM-DD or RFC 3339")
		}
		endDate = &parsed
	}

	a := &Automation{
		UserID:      userID,
		Name:        req.Name,
		Amount:      money.Round2(req.Amount),
		Frequency:   req.Frequency,
		Category:    category,
		StartDate:   startDate,
		EndDate:     endDate,
		IsActive:    true,
		Description: req.Description,
	}

	if err := h.Store.Insert(userContext(c), a); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create automation")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Automation created successfully",
		"data":    a,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	automations, err := h.Store.ListByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch automations")
	}

	return c.JSON(fiber.Map{
		"message": "Automations fetched successfully",
		"count":   len(automations),
		"data":    automations,
	})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Automation not found")
	}

	a, err := h.Store.GetByID(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Automation not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch automation")
	}

	return c.JSON(fiber.Map{
		"message": "Automation fetched successfully",
		"data":    a,
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Automation not found")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	patch, err := buildPatch(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	a, err := h.Store.Update(userContext(c), userID, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Automation not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update automation")
	}

	return c.JSON(fiber.Map{
		"message": "Automation updated successfully",
		"data":    a,
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Automation not found")
	}

	a, err := h.Store.Delete(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Automation not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete automation")
	}

	return c.JSON(fiber.Map{
		"message": "Automation deleted successfully",
		"data":    a,
	})
}

func (h *Handler) Toggle(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Automation not found")
	}

	a, err := h.Store.Toggle(userContext(c), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Automation not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to toggle automation")
	}

	state := "deactivated"
	if a.IsActive {
		state = "activated"
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Automation %s successfully", state),
		"data":    a,
	})
}

// Process materializes one expense from the automation and stamps the
// processing time. The two writes are independent: if the stamp fails
// after the expense insert succeeded, the expense stays and the
// automation remains unstamped. Retrying will create another expense.
func (h *Handler) Process(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, ok := entryID(c)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Automation not found")
	}

	ctx := userContext(c)
	a, err := h.Store.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Automation not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process automation")
	}

	if !a.IsActive {
		return fiber.NewError(fiber.StatusBadRequest, "Automation is not active")
	}

	now := time.Now()
	exp := &expense.Expense{
		UserID:      userID,
		Name:        a.Name,
		Amount:      a.Amount,
		Date:        now,
		Category:    a.Category,
		Description: fmt.Sprintf("Auto-generated from %s automation", a.Frequency),
	}

	if err := h.Expenses.Insert(ctx, exp); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process automation")
	}

	stamped, err := h.Store.StampProcessed(ctx, userID, id, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process automation")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Automation processed successfully",
		"data": fiber.Map{
			"automation": stamped,
			"expense":    exp,
		},
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
	if req.Frequency != nil {
		if !domain.ValidFrequency(*req.Frequency) {
			return Patch{}, errors.New("Invalid frequency")
		}
		patch.Frequency = req.Frequency
	}
	if req.Category != nil {
		if !domain.ValidExpenseCategory(*req.Category) {
			return Patch{}, errors.New("Invalid category")
		}
		patch.Category = req.Category
	}
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return Patch{}, errors.New("startDate must be YYYY-MM-DD or RFC 3339")
		}
		patch.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return Patch{}, errors.New("endDate must be YYYY-MM-DD or RFC 3339")
		}
		patch.EndDate = &parsed
	}
	if req.IsActive != nil {
		patch.IsActive = req.IsActive
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
