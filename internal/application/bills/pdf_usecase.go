package bills

import (
	"context"
	"fmt"

	"github.com/billed-app/billed-api/internal/domain"
	"github.com/billed-app/billed-api/internal/domain/entity"
	"github.com/billed-app/billed-api/internal/domain/repository"
	"github.com/billed-app/billed-api/internal/domain/session"
)

// PDFUseCase exporta una nota de frais como PDF.
type PDFUseCase struct {
	store     repository.BillStore
	generator PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(store repository.BillStore, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{store: store, generator: generator}
}

// Generate devuelve los bytes del PDF de la nota, verificando que la sesión
// puede leerla.
func (uc *PDFUseCase) Generate(ctx context.Context, identity session.Identity, id string) ([]byte, *entity.Bill, error) {
	bill, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if bill == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !identity.CanRead(bill.Email) {
		return nil, nil, domain.ErrForbidden
	}
	pdf, err := uc.generator.GenerateBillPDF(ctx, bill)
	if err != nil {
		return nil, nil, fmt.Errorf("generar PDF: %w", err)
	}
	return pdf, bill, nil
}
