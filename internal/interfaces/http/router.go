package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Prestamos-api/internal/application/auth"
	"github.com/jhoicas/Prestamos-api/internal/application/directory"
	"github.com/jhoicas/Prestamos-api/internal/application/ledger"
	"github.com/jhoicas/Prestamos-api/internal/application/reports"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	EquipmentUC *directory.EquipmentUseCase
	UserUC      *directory.UserUseCase
	ClientUC    *directory.ClientUseCase
	LedgerUC    *ledger.LedgerUseCase
	ReceiptUC   *ledger.ReceiptUseCase
	ReportsUC   *reports.ReportsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Equipment (protegido)
	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Put("/:id", equipmentHandler.Update)
	equipment.Delete("/:id", equipmentHandler.Deactivate)

	// Users (protegido, solo admin)
	users := protected.Group("/users", RequireAccessLevel(entity.AccessAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Deactivate)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC, deps.ReceiptUC)
	movements.Post("/checkout", movementHandler.CheckOut)
	movements.Post("/checkout-batch", movementHandler.BatchCheckOut)
	movements.Post("/:id/return", movementHandler.Return)
	movements.Get("/:id/receipt", movementHandler.Receipt)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/open", reportHandler.OpenMovements)
	reportsGroup.Get("/activity", reportHandler.RecentActivity)
	reportsGroup.Get("/clients/:id/history", reportHandler.ClientHistory)
}
