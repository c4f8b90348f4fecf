package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Logistica-api/internal/application/analytics"
	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/cod"
	"github.com/jhoicas/Logistica-api/internal/application/deliveries"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	SettingsUC     *usecase.SettingsUseCase
	DeliveryUC     *deliveries.DeliveryUseCase
	ImportUC       *deliveries.ImportUseCase
	CodUC          *cod.UseCase
	DashboardUC    *appanalytics.DashboardUseCase
	JWTSecret      string
	MaxUploadBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Seguimiento público por referencia
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	api.Get("/deliveries/track/:reference", deliveryHandler.Track)

	// Rutas protegidas (requieren Bearer Token y sistema fuera de mantenimiento)
	protected := api.Group("/", requireAuth, RequireOnline(deps.SettingsUC))

	// Deliveries
	importHandler := NewImportHandler(deps.ImportUC, deps.MaxUploadBytes)
	dlv := protected.Group("/deliveries")
	dlv.Post("/bulk-status", staff, importHandler.BulkStatus)
	dlv.Post("/bulk/preview", RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleCustomer), importHandler.Preview)
	dlv.Post("/bulk", RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleCustomer), importHandler.BulkCreate)
	dlv.Post("/", deliveryHandler.Create)
	dlv.Get("/", deliveryHandler.List)
	dlv.Get("/:id", deliveryHandler.GetByID)
	dlv.Put("/:id", deliveryHandler.Update)
	dlv.Delete("/:id", adminOnly, deliveryHandler.Delete)
	dlv.Patch("/:id/status", deliveryHandler.UpdateStatus)
	dlv.Patch("/:id/assign", staff, deliveryHandler.AssignDriver)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/drivers", staff, userHandler.ListDrivers)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", adminOnly, settingsHandler.Update)

	// COD
	codHandler := NewCodHandler(deps.CodUC)
	codGroup := protected.Group("/cod")
	codGroup.Get("/summary", codHandler.Summary)
	codGroup.Post("/reports", codHandler.CreateReport)
	codGroup.Get("/reports", codHandler.ListReports)
	codGroup.Delete("/reports/:id", codHandler.DeleteReport)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
}
