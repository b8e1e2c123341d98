package repository

import (
	"context"
	"io"

	"github.com/billed-app/billed-api/internal/domain/entity"
)

// CreateBillInput payload de la primera fase del alta: el justificante y el
// email del emisor. El resto de campos llega en la segunda fase (Update):
// el store remoto impone este protocolo de dos pasos.
type CreateBillInput struct {
	Receipt  io.Reader
	FileName string
	Email    string
}

// CreateBillResult referencia devuelta por el store al crear: el id asignado
// y la ubicación del justificante ya subido.
type CreateBillResult struct {
	ID       string
	FileURL  string
	FileName string
}

// BillStore puerto hacia el store remoto de notas de frais.
// Los fallos se devuelven como *storeerr.Error con Kind estructurado.
type BillStore interface {
	// List devuelve las notas del email dado, sin orden garantizado.
	List(ctx context.Context, email string) ([]entity.Bill, error)
	// Create sube el justificante y reserva el registro (fase 1).
	Create(ctx context.Context, in CreateBillInput) (*CreateBillResult, error)
	// Update completa el registro con todos los campos de la nota (fase 2).
	Update(ctx context.Context, id string, bill entity.Bill) (*entity.Bill, error)
	// GetByID devuelve una nota por id; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
}

// ReceiptSource abre el contenido del justificante asociado a una nota
// (vista previa del recibo). Devuelve el stream y su content type.
type ReceiptSource interface {
	OpenReceipt(ctx context.Context, id string) (io.ReadCloser, string, error)
}
