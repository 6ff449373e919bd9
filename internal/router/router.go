package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GungunSharma0502/Expense-tracker/internal/automation"
	"github.com/GungunSharma0502/Expense-tracker/internal/dashboard"
	"github.com/GungunSharma0502/Expense-tracker/internal/expense"
	handlers "github.com/GungunSharma0502/Expense-tracker/internal/http"
	"github.com/GungunSharma0502/Expense-tracker/internal/income"
	"github.com/GungunSharma0502/Expense-tracker/internal/reports"
)

type Router struct {
	AuthHandler       *handlers.AuthHandler
	IncomeHandler     *income.Handler
	ExpenseHandler    *expense.Handler
	AutomationHandler *automation.Handler
	DashboardHandler  *dashboard.Handler
	ReportsHandler    *reports.Handler
	AuthMW            fiber.Handler
	AuthLimiter       fiber.Handler
	APILimiter        fiber.Handler
}

// RegisterRoutes wires every endpoint. The credential endpoints carry their
// own limiter and stay outside the session check; each feature group carries
// the API limiter plus the session middleware. Static segments register
// before parameterized ones so /income/total/sum is not swallowed by
// /income/:id.
func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthLimiter != nil {
		app.Use("/signup", r.AuthLimiter)
		app.Use("/login", r.AuthLimiter)
	}
	app.Post("/signup", r.AuthHandler.Signup)
	app.Post("/login", r.AuthHandler.Login)
	app.Post("/logout", r.AuthHandler.Logout)
	app.Get("/profile", r.AuthMW, r.AuthHandler.Profile)
	app.Get("/check-auth", r.AuthMW, r.AuthHandler.CheckAuth)

	guards := handlerChain(r.APILimiter, r.AuthMW)

	inc := app.Group("/income", guards...)
	inc.Post("/", r.IncomeHandler.Create)
	inc.Get("/", r.IncomeHandler.List)
	inc.Get("/total/sum", r.IncomeHandler.Total)
	inc.Get("/:id", r.IncomeHandler.Get)
	inc.Patch("/:id", r.IncomeHandler.Update)
	inc.Delete("/:id", r.IncomeHandler.Delete)

	exp := app.Group("/expense", guards...)
	exp.Post("/", r.ExpenseHandler.Create)
	exp.Get("/", r.ExpenseHandler.List)
	exp.Get("/total/sum", r.ExpenseHandler.Total)
	exp.Get("/:id", r.ExpenseHandler.Get)
	exp.Patch("/:id", r.ExpenseHandler.Update)
	exp.Delete("/:id", r.ExpenseHandler.Delete)

	auto := app.Group("/automation", guards...)
	auto.Post("/", r.AutomationHandler.Create)
	auto.Get("/", r.AutomationHandler.List)
	auto.Get("/:id", r.AutomationHandler.Get)
	auto.Patch("/:id/toggle", r.AutomationHandler.Toggle)
	auto.Post("/:id/process", r.AutomationHandler.Process)
	auto.Patch("/:id", r.AutomationHandler.Update)
	auto.Delete("/:id", r.AutomationHandler.Delete)

	dash := app.Group("/dashboard", guards...)
	dash.Get("/summary", r.DashboardHandler.Summary)
	dash.Get("/expense-by-category", r.DashboardHandler.ExpenseByCategory)
	dash.Get("/income-by-category", r.DashboardHandler.IncomeByCategory)
	dash.Get("/monthly-trends", r.DashboardHandler.MonthlyTrends)
	dash.Get("/recent-transactions", r.DashboardHandler.RecentTransactions)

	if r.ReportsHandler != nil {
		rep := app.Group("/reports", guards...)
		rep.Get("/statement", r.ReportsHandler.Statement)
		rep.Get("/export", r.ReportsHandler.Export)
	}
}

func handlerChain(handlers ...fiber.Handler) []fiber.Handler {
	var chain []fiber.Handler
	for _, h := range handlers {
		if h != nil {
			chain = append(chain, h)
		}
	}
	return chain
}
