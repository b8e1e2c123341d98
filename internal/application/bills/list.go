package bills

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/billed-app/billed-api/internal/domain/repository"
	"github.com/billed-app/billed-api/internal/domain/session"
	"github.com/billed-app/billed-api/internal/domain/storeerr"
	"github.com/billed-app/billed-api/pkg/logger"
)

// ListTitle título de la página del listado.
const ListTitle = "Mes notes de frais"

// ListRow fila del listado, lista para render. Date es el formato corto de
// pantalla; RawDate conserva el valor crudo que determinó el orden.
type ListRow struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Name        string              `json:"name"`
	Date        string              `json:"date"`
	RawDate     string              `json:"rawDate"`
	Amount      decimal.Decimal     `json:"amount"`
	VAT         decimal.NullDecimal `json:"vat"`
	Pct         decimal.Decimal     `json:"pct"`
	Commentary  string              `json:"commentary,omitempty"`
	Status      string              `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	FileURL     string              `json:"fileUrl,omitempty"`
	FileName    string              `json:"fileName,omitempty"`
}

// ListView modelo de vista del listado. Con Error presente, Rows queda vacío
// y la zona de listado no se pinta. NewBillPath es el destino del botón
// "Nouvelle note de frais", presente también en la vista de error.
type ListView struct {
	Title       string    `json:"title"`
	NewBillPath string    `json:"newBillPath"`
	Rows        []ListRow `json:"rows"`
	Error       string    `json:"error,omitempty"`
}

// ListPresenter obtiene las notas del store remoto, las normaliza y ordena
// para pantalla, y convierte los fallos remotos en un mensaje mostrado.
// Solo lectura: nunca muta una nota.
type ListPresenter struct {
	store    repository.BillStore
	identity session.Identity
	log      *logger.Logger
}

// NewListPresenter construye el presenter para la identidad dada.
func NewListPresenter(store repository.BillStore, identity session.Identity, log *logger.Logger) *ListPresenter {
	if log == nil {
		log = logger.Nop()
	}
	return &ListPresenter{store: store, identity: identity, log: log}
}

// Load carga el listado. Las fechas se formatean para pantalla reteniendo el
// valor crudo para ordenar (el formato de pantalla no ordena
// lexicográficamente); una fecha corrupta se muestra cruda y se registra,
// nunca se descarta la fila. Orden: descendente por fecha, estable en empates
// (se conserva el orden del store).
func (p *ListPresenter) Load(ctx context.Context) ListView {
	billList, err := p.store.List(ctx, p.identity.Email)
	if err != nil {
		p.log.Error().Err(err).Str("email", p.identity.Email).Msg("list de notas falló")
		return ListView{Title: ListTitle, NewBillPath: PathNewBill, Error: storeerr.Display(err)}
	}

	rows := make([]ListRow, 0, len(billList))
	for _, b := range billList {
		display, ferr := FormatDate(b.Date)
		if ferr != nil {
			p.log.Warn().Err(ferr).Str("bill_id", b.ID).Msg("fecha corrupta en el listado, se muestra cruda")
			display = b.Date
		}
		rows = append(rows, ListRow{
			ID:          b.ID,
			Type:        b.Type,
			Name:        b.Name,
			Date:        display,
			RawDate:     b.Date,
			Amount:      b.Amount,
			VAT:         b.VAT,
			Pct:         b.Pct,
			Commentary:  b.Commentary,
			Status:      string(b.Status),
			StatusLabel: b.Status.StatusLabel(),
			FileURL:     b.FileURL,
			FileName:    b.FileName,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RawDate > rows[j].RawDate
	})

	return ListView{Title: ListTitle, NewBillPath: PathNewBill, Rows: rows}
}
