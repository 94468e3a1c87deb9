package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/tu-usuario/inventario-hosteria/internal/application/auth"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/internal/application/inventory"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	ProductQuery  *inventory.ProductQueryUseCase
	SheetPDF      ProductSheetGenerator
	Store         *session.Store
	Log           *logger.Logger
	Ready         func() bool
}

// Router registra las rutas de la API. Las rutas van sin prefijo /api: el
// frontend existente las consume tal cual.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.Store, deps.Log)

	// Status y logout solo tocan la cookie de sesión, nunca el almacén de
	// datos: se registran antes del corte de disponibilidad para que sigan
	// respondiendo con el almacén caído.
	app.Get("/auth/status", authHandler.Status)
	app.Post("/auth/logout", authHandler.Logout)

	app.Use(Availability(deps.Ready))

	// Auth (público)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/sessionLogin", authHandler.SessionLogin)

	// Rutas protegidas (requieren sesión de servidor)
	protected := app.Group("/", RequireSession(deps.Store))

	dashboardHandler := NewDashboardHandler(deps.ProductQuery, deps.Log)
	protected.Get("/dashboard-data", dashboardHandler.Summary)

	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.Log)
	protected.Post("/movements", movementHandler.Create)

	productHandler := NewProductHandler(deps.ProductQuery, deps.Log)
	exportHandler := NewExportHandler(deps.ProductQuery, deps.SheetPDF, deps.Log)
	protected.Get("/products/:name/movements.xlsx", exportHandler.MovementsXLSX)
	protected.Get("/products/:name/sheet.pdf", exportHandler.ProductSheetPDF)
	protected.Get("/products/:name", productHandler.Detail)
}

// Availability corta con 503 cuando el almacén de datos no está disponible
// (sin conexión configurada o pool caído). Ninguna operación tiene sentido
// sin él, así que se corta antes de entrar a los handlers.
func Availability(ready func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ready != nil && !ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "data store not available"})
		}
		return c.Next()
	}
}
