package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billed-app/billed-api/internal/application/bills"
	"github.com/billed-app/billed-api/internal/domain/repository"
	"github.com/billed-app/billed-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store     repository.BillStore
	Receipts  repository.ReceiptSource
	BillPDF   *bills.PDFUseCase
	Log       *logger.Logger
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todas las rutas del módulo requieren sesión (Bearer Token)
	protected := api.Group("/", SessionMiddleware(deps.JWTSecret))

	billGroup := protected.Group("/bills")
	billHandler := NewBillHandler(deps.Store, deps.Receipts, deps.BillPDF, deps.Log)
	billGroup.Get("/", billHandler.List)
	billGroup.Post("/", billHandler.Create)
	billGroup.Get("/:id/receipt", billHandler.Receipt)
	billGroup.Get("/:id/pdf", billHandler.PDF)
}
