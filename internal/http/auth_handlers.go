package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
	"github.com/GungunSharma0502/Expense-tracker/internal/user"
)

// UserStore is the persistence surface the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}

type AuthHandler struct {
	Users         UserStore
	Secret        []byte
	SessionTTL    time.Duration
	SecureCookies bool
}

func NewAuthHandler(users UserStore, secret []byte, ttl time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret, SessionTTL: ttl, SecureCookies: secure}
}

type signupRequest struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     string  `json:"emailId"`
	Password  string  `json:"password"`
}

type loginRequest struct {
	Email    string `json:"emailId"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	body.FirstName = strings.TrimSpace(body.FirstName)
	body.Email = strings.TrimSpace(body.Email)
	if body.LastName != nil {
		trimmed := strings.TrimSpace(*body.LastName)
		if trimmed == "" {
			body.LastName = nil
		} else {
			body.LastName = &trimmed
		}
	}

	if err := validateName(body.FirstName, body.LastName); err != nil {
		return err
	}
	if err := validateEmail(body.Email); err != nil {
		return err
	}
	if err := validatePassword(body.Password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
	}

	u := &user.User{
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Email:        strings.ToLower(body.Email),
		PasswordHash: string(hashed),
	}
	if err := h.Users.Create(userContext(c), u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusBadRequest, "User with this email already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
	}

	token, err := auth.IssueToken(h.Secret, u.ID, h.SessionTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create session")
	}
	auth.SetSessionCookie(c, token, h.SessionTTL, h.SecureCookies)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"data":    u,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
	}

	u, err := h.Users.FindByEmail(userContext(c), body.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Could not login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := auth.IssueToken(h.Secret, u.ID, h.SessionTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create session")
	}
	auth.SetSessionCookie(c, token, h.SessionTTL, h.SecureCookies)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data":    u,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "User logged out successfully"})
}

// Profile returns the authenticated user's record.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	u, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please login to continue.")
	}
	return c.JSON(fiber.Map{
		"message": "Profile fetched successfully",
		"data":    u,
	})
}

// CheckAuth is a lightweight probe for the session state.
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	u, err := auth.CurrentUser(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please login to continue.")
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          u,
	})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
