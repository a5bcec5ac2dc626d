package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ResourceUC *usecase.ResourceUseCase
	UnitUC     *usecase.UnitUseCase
	ClientUC   *usecase.ClientUseCase
	BalanceUC  *usecase.BalanceUseCase
	ReportUC   *usecase.ReportUseCase
	ReceiptUC  *inventory.ReceiptUseCase
	ShipmentUC *inventory.ShipmentUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Lecturas: cualquier rol; escrituras: admin o
// bodeguero; borrado físico de catálogos: solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	read := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleConsulta)
	write := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	admin := RequireRole(jwt.RoleAdmin)

	catalog := func(path string, h catalogHandler) {
		g := api.Group(path)
		g.Get("/", read, h.List)
		g.Get("/:id", read, h.GetByID)
		g.Post("/", write, h.Create)
		g.Put("/:id", write, h.Update)
		g.Put("/:id/archive", write, h.Archive)
		g.Put("/:id/restore", write, h.Restore)
		g.Delete("/:id", admin, h.Delete)
	}
	catalog("/resources", NewResourceHandler(deps.ResourceUC))
	catalog("/units", NewUnitHandler(deps.UnitUC))
	catalog("/clients", NewClientHandler(deps.ClientUC))

	receipts := api.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.ReportUC)
	receipts.Get("/", read, receiptHandler.List)
	receipts.Get("/:id", read, receiptHandler.GetByID)
	receipts.Get("/:id/pdf", read, receiptHandler.PDF)
	receipts.Post("/", write, receiptHandler.Create)
	receipts.Put("/:id", write, receiptHandler.Update)
	receipts.Delete("/:id", write, receiptHandler.Delete)

	shipments := api.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, deps.ReportUC)
	shipments.Get("/", read, shipmentHandler.List)
	shipments.Get("/:id", read, shipmentHandler.GetByID)
	shipments.Get("/:id/pdf", read, shipmentHandler.PDF)
	shipments.Post("/", write, shipmentHandler.Create)
	shipments.Put("/:id", write, shipmentHandler.Update)
	shipments.Put("/:id/approve", write, shipmentHandler.Approve)
	shipments.Put("/:id/revoke", write, shipmentHandler.Revoke)
	shipments.Delete("/:id", write, shipmentHandler.Delete)

	balance := api.Group("/balance")
	balanceHandler := NewBalanceHandler(deps.BalanceUC, deps.ReportUC)
	balance.Get("/", read, balanceHandler.List)
	balance.Get("/pdf", read, balanceHandler.PDF)
	balance.Get("/export.xml", read, balanceHandler.ExportXML)
}

// catalogHandler operaciones comunes de los handlers de catálogo.
type catalogHandler interface {
	List(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Archive(c *fiber.Ctx) error
	Restore(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}
