package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/exesman-api/internal/application/auth"
	"github.com/jhoicas/exesman-api/internal/application/report"
	"github.com/jhoicas/exesman-api/internal/application/usecase"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CompanyUC *usecase.CompanyUseCase
	UserUC    *usecase.UserUseCase
	ExpenseUC *usecase.ExpenseUseCase
	ReportUC  *report.ReportUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (protegido; mutaciones solo admin vía RequireRole)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", RequireRole(entity.RoleAdmin), companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", RequireRole(entity.RoleAdmin), companyHandler.Update)
	companies.Delete("/:id", RequireRole(entity.RoleAdmin), companyHandler.Delete)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	// Registrada antes de /:id para que "subordinates" no se capture como id.
	users.Get("/subordinates/list", RequireRole(entity.RoleManager, entity.RoleAdmin), userHandler.Subordinates)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleAdmin), userHandler.Delete)

	// Expenses (protegido; la política por registro se evalúa en el use case)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.ReportUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/pending", RequireRole(entity.RoleManager, entity.RoleAdmin), expenseHandler.ListPending)
	expenses.Get("/stats", expenseHandler.Stats)
	expenses.Get("/report", expenseHandler.Report)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Patch("/:id/status", RequireRole(entity.RoleManager, entity.RoleAdmin), expenseHandler.UpdateStatus)
	expenses.Delete("/:id", expenseHandler.Delete)
}
