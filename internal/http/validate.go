package http

import (
	"net/mail"
	"unicode"

	"github.com/gofiber/fiber/v2"
)

const (
	minFirstNameLen = 3
	maxNameLen      = 30
	minPasswordLen  = 8
)

func validateName(first string, last *string) error {
	if len(first) < minFirstNameLen || len(first) > maxNameLen {
		return fiber.NewError(fiber.StatusBadRequest, "First name must be between 3 and 30 characters")
	}
	if last != nil && len(*last) > maxNameLen {
		return fiber.NewError(fiber.StatusBadRequest, "Last name must be at most 30 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email address")
	}
	return nil
}

// validatePassword enforces length plus one of each character class.
func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 8 characters")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return fiber.NewError(fiber.StatusBadRequest, "Password must contain uppercase, lowercase, number and special character")
	}
	return nil
}
