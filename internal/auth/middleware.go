package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GungunSharma0502/Expense-tracker/internal/user"
)

// CookieName is the HTTP-only cookie carrying the session token.
const CookieName = "token"

// UserStore resolves a token subject to an existing user.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Middleware verifies the session token and attaches the resolved user to
// the request. The token is read from the session cookie; a Bearer header
// is accepted as a fallback for non-browser clients.
func Middleware(secret []byte, users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please login to continue.")
		}

		userID, err := ParseToken(secret, raw)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				return fiber.NewError(fiber.StatusUnauthorized, "Session expired. Please login again.")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token. Please login again.")
		}

		u, err := users.FindByID(userContext(c), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found. Please login again.")
		}

		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}

// UserID returns the authenticated user's id set by Middleware.
func UserID(c *fiber.Ctx) (string, error) {
	if uid, ok := c.Locals("user_id").(string); ok && strings.TrimSpace(uid) != "" {
		return uid, nil
	}
	return "", errors.New("user id missing")
}

// CurrentUser returns the resolved user record set by Middleware.
func CurrentUser(c *fiber.Ctx) (*user.User, error) {
	if u, ok := c.Locals("user").(*user.User); ok && u != nil {
		return u, nil
	}
	return nil, errors.New("user missing")
}

// SetSessionCookie attaches the signed token as an HTTP-only cookie.
func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now(),
		HTTPOnly: true,
	})
}

func tokenFromRequest(c *fiber.Ctx) string {
	if raw := strings.TrimSpace(c.Cookies(CookieName)); raw != "" {
		return raw
	}

	authHeader := strings.TrimSpace(c.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
