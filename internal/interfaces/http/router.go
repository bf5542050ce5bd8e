package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayra/taller-api/internal/application/auth"
	"github.com/wayra/taller-api/internal/application/billing"
	"github.com/wayra/taller-api/internal/application/inventory"
	"github.com/wayra/taller-api/internal/application/orders"
	"github.com/wayra/taller-api/internal/application/reports"
	"github.com/wayra/taller-api/internal/application/settings"
	"github.com/wayra/taller-api/internal/application/usecase"
	"github.com/wayra/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ClientUC    *usecase.ClientUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *inventory.RegisterMovementUseCase
	OrderUC     *orders.CreateOrderUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	SettingsUC  *settings.UseCase
	ReportUC    *reports.UseCase
	JWTSecret   string
}

// Listas de roles por área. SUPER_USUARIO pasa siempre por el middleware.
var (
	rolesAdmins = []string{
		entity.RoleAdminWayraTaller,
		entity.RoleAdminWayraProductos,
		entity.RoleAdminTorniRepuestos,
	}
	rolesVentas = []string{
		entity.RoleAdminWayraTaller,
		entity.RoleAdminWayraProductos,
		entity.RoleAdminTorniRepuestos,
		entity.RoleVendedorWayra,
		entity.RoleVendedorTorni,
	}
	rolesTaller = []string{
		entity.RoleAdminWayraTaller,
		entity.RoleAdminWayraProductos,
		entity.RoleAdminTorniRepuestos,
		entity.RoleVendedorWayra,
		entity.RoleVendedorTorni,
		entity.RoleMecanico,
	}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro solo SUPER_USUARIO.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mecánicos disponibles para asignar a órdenes.
	protected.Get("/usuarios/mecanicos", RequireRole(rolesTaller...), authHandler.ListMechanics)

	// Clientes y vehículos.
	clients := protected.Group("/clientes", RequireRole(rolesVentas...))
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Post("/:id/vehiculos", clientHandler.AddVehicle)
	clients.Get("/:id/vehiculos", clientHandler.ListVehicles)
	clients.Put("/:id/vehiculos/:vehicleId", clientHandler.UpdateVehicle)

	// Catálogo de productos. Lectura para ventas y taller; escritura admins.
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", RequireRole(rolesTaller...), productHandler.List)
	products.Get("/stock-bajo", RequireRole(rolesAdmins...), productHandler.ListLowStock)
	products.Get("/:id", RequireRole(rolesTaller...), productHandler.GetByID)
	products.Post("/", RequireRole(rolesAdmins...), productHandler.Create)
	products.Put("/:id", RequireRole(rolesAdmins...), productHandler.Update)

	// Movimientos de inventario.
	invGroup := protected.Group("/inventario", RequireRole(rolesAdmins...))
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/movimientos", inventoryHandler.RegisterMovement)
	invGroup.Get("/movimientos", inventoryHandler.ListMovements)

	// Órdenes de trabajo.
	ordersGroup := protected.Group("/ordenes", RequireRole(rolesTaller...))
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id", orderHandler.Update)

	// Facturación.
	invoices := protected.Group("/facturacion", RequireRole(rolesVentas...))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Post("/:id/pagar", invoiceHandler.MarkPaid)
	invoices.Post("/:id/anular", RequireRole(rolesAdmins...), invoiceHandler.Void)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Configuración comercial (márgenes, tasa, descuentos).
	cfg := protected.Group("/configuracion", RequireRole(rolesAdmins...))
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	cfg.Get("/", settingsHandler.Get)
	cfg.Get("/:clave", settingsHandler.GetOne)
	cfg.Patch("/", settingsHandler.Update)

	// Reportes y libro contable.
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reportes", RequireRole(rolesAdmins...))
	reportsGroup.Get("/:entidad", reportHandler.GetReport)
	reportsGroup.Get("/:entidad/comparativo", reportHandler.GetComparative)
	accounting := protected.Group("/contabilidad", RequireRole(rolesAdmins...))
	accounting.Post("/movimientos", reportHandler.RegisterMovement)
	accounting.Get("/movimientos", reportHandler.ListMovements)
}
