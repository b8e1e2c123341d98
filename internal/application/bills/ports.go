package bills

import (
	"context"

	"github.com/billed-app/billed-api/internal/domain/entity"
)

// Rutas de navegación de la SPA empleada como colaborador externo: el core
// solo emite la petición de navegación, el router la resuelve.
const (
	PathBills   = "#employee/bills"
	PathNewBill = "#employee/bill/new"
)

// NavigateFunc colaborador de navegación: cambia la vista renderizada.
type NavigateFunc func(path string)

// PDFGenerator puerto de exportación de una nota de frais a PDF.
type PDFGenerator interface {
	GenerateBillPDF(ctx context.Context, bill *entity.Bill) ([]byte, error)
}
