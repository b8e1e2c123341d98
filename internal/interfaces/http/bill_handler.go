package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/billed-app/billed-api/internal/application/bills"
	"github.com/billed-app/billed-api/internal/application/dto"
	"github.com/billed-app/billed-api/internal/domain"
	"github.com/billed-app/billed-api/internal/domain/entity"
	"github.com/billed-app/billed-api/internal/domain/repository"
	"github.com/billed-app/billed-api/internal/domain/storeerr"
	"github.com/billed-app/billed-api/internal/domain/upload"
	"github.com/billed-app/billed-api/pkg/logger"
)

// BillHandler maneja las peticiones HTTP del módulo de notas de frais del
// empleado (protegido por sesión).
type BillHandler struct {
	store    repository.BillStore
	receipts repository.ReceiptSource
	pdfUC    *bills.PDFUseCase
	log      *logger.Logger
}

// NewBillHandler construye el handler.
func NewBillHandler(store repository.BillStore, receipts repository.ReceiptSource, pdfUC *bills.PDFUseCase, log *logger.Logger) *BillHandler {
	return &BillHandler{store: store, receipts: receipts, pdfUC: pdfUC, log: log}
}

// List devuelve el modelo de vista del listado del empleado. Un fallo del
// store no es un fallo HTTP: la vista lleva el mensaje a mostrar y las filas
// quedan vacías, como en la página original.
// GET /api/bills
func (h *BillHandler) List(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	presenter := bills.NewListPresenter(h.store, identity, h.log)
	return c.JSON(presenter.Load(c.Context()))
}

// Create recibe el formulario multipart de nueva nota y ejecuta el envío en
// dos fases. El rechazo del justificante responde 422 con la key estable de
// la región de error; un fallo remoto responde 502 sin navegación (el
// formulario del cliente queda intacto).
// POST /api/bills
func (h *BillHandler) Create(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	if !identity.IsEmployee() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo empleados envían notas"})
	}

	var form dto.NewBillForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "justificante requerido"})
	}

	var navigatedTo string
	ctrl := bills.NewDraftController(h.store, identity, func(path string) { navigatedTo = path }, h.log)
	ctrl.SetFields(bills.FormFields{
		Type:       form.Type,
		Name:       form.Name,
		Date:       form.Date,
		Amount:     form.Amount,
		VAT:        form.VAT,
		Pct:        form.Pct,
		Commentary: form.Commentary,
	})

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "justificante ilegible"})
	}
	defer f.Close()

	candidate := upload.Candidate{
		FileName: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get(fiber.HeaderContentType),
	}
	if err := ctrl.HandleFileChange(candidate, f); err != nil {
		if errors.Is(err, domain.ErrUnsupportedFileType) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"code":     "UNSUPPORTED_FILE_TYPE",
				"errorKey": bills.FileErrorKey,
				"message":  "Le justificatif doit être un fichier jpg, jpeg ou png",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "justificante ilegible"})
	}

	bill, err := ctrl.Submit(c.Context())
	if err != nil {
		switch {
		case errors.Is(err, bills.ErrSubmissionInFlight):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUBMISSION_IN_FLIGHT", Message: "envío ya en curso"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		default:
			// Fallo remoto: ya quedó en el log, el cliente conserva el formulario.
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORE_FAILURE", Message: "el envío no se pudo completar"})
		}
	}

	c.Set(fiber.HeaderLocation, navigatedTo)
	return c.Status(fiber.StatusCreated).JSON(toBillResponse(bill))
}

// Receipt sirve la imagen del justificante (vista previa del modal).
// GET /api/bills/:id/receipt
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	id := c.Params("id")

	bill, err := h.store.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if bill == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota no encontrada"})
	}
	if !identity.CanRead(bill.Email) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}

	rc, contentType, err := h.receipts.OpenReceipt(c.Context(), id)
	if err != nil {
		if storeerr.KindOf(err) == storeerr.KindNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "justificante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(rc)
}

// PDF exporta la nota como PDF.
// GET /api/bills/:id/pdf
func (h *BillHandler) PDF(c *fiber.Ctx) error {
	identity := GetIdentity(c)
	id := c.Params("id")

	pdfBytes, bill, err := h.pdfUC.Generate(c.Context(), identity, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="note-de-frais-`+bill.ID+`.pdf"`)
	return c.Send(pdfBytes)
}

func toBillResponse(b *entity.Bill) dto.BillResponse {
	return dto.BillResponse{
		ID:         b.ID,
		Type:       b.Type,
		Name:       b.Name,
		Date:       b.Date,
		Amount:     b.Amount,
		VAT:        b.VAT,
		Pct:        b.Pct,
		Commentary: b.Commentary,
		FileURL:    b.FileURL,
		FileName:   b.FileName,
		Status:     string(b.Status),
		Email:      b.Email,
	}
}
