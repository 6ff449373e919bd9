package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/joho/godotenv"

	"github.com/GungunSharma0502/Expense-tracker/internal/auth"
	"github.com/GungunSharma0502/Expense-tracker/internal/automation"
	"github.com/GungunSharma0502/Expense-tracker/internal/config"
	"github.com/GungunSharma0502/Expense-tracker/internal/dashboard"
	"github.com/GungunSharma0502/Expense-tracker/internal/database"
	"github.com/GungunSharma0502/Expense-tracker/internal/expense"
	apphttp "github.com/GungunSharma0502/Expense-tracker/internal/http"
	"github.com/GungunSharma0502/Expense-tracker/internal/income"
	"github.com/GungunSharma0502/Expense-tracker/internal/reports"
	"github.com/GungunSharma0502/Expense-tracker/internal/router"
	"github.com/GungunSharma0502/Expense-tracker/internal/user"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})

	app.Use(helmet.New())
	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	users := user.NewRepository(pool)
	incomeRepo := income.NewRepository(pool)
	expenseRepo := expense.NewRepository(pool)
	automationRepo := automation.NewRepository(pool)

	r := &router.Router{
		AuthHandler:       apphttp.NewAuthHandler(users, cfg.JWTSecret, cfg.SessionTTL, cfg.SecureCookies()),
		IncomeHandler:     income.NewHandler(incomeRepo),
		ExpenseHandler:    expense.NewHandler(expenseRepo, incomeRepo),
		AutomationHandler: automation.NewHandler(automationRepo, expenseRepo),
		DashboardHandler:  dashboard.NewHandler(dashboard.NewRepo(pool)),
		ReportsHandler:    reports.NewHandler(reports.NewRepository(pool)),
		AuthMW:            auth.Middleware(cfg.JWTSecret, users),
		AuthLimiter:       router.RateLimitAuth(cfg.AuthRateMax, cfg.RateWindow),
		APILimiter:        router.RateLimitAPI(cfg.APIRateMax, cfg.RateWindow),
	}
	r.RegisterRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	})

	logger.Info("listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			logger.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}
