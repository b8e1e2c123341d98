package bills_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billed-app/billed-api/internal/application/bills"
	"github.com/billed-app/billed-api/internal/domain/entity"
	"github.com/billed-app/billed-api/internal/domain/session"
	"github.com/billed-app/billed-api/internal/domain/storeerr"
)

func billOn(id, date string) entity.Bill {
	return entity.Bill{
		ID:     id,
		Type:   "Transports",
		Name:   "note " + id,
		Date:   date,
		Amount: decimal.NewFromInt(100),
		Pct:    decimal.NewFromInt(20),
		Status: entity.BillStatusPending,
		Email:  "a@a.com",
	}
}

func presenterWith(store *fakeStore) *bills.ListPresenter {
	return bills.NewListPresenter(store, employeeIdentity, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden y normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_OrdenDescendentePorFecha(t *testing.T) {
	store := &fakeStore{
		listFn: func(context.Context, string) ([]entity.Bill, error) {
			return []entity.Bill{
				billOn("b1", "2021-01-01"),
				billOn("b2", "2022-02-15"),
				billOn("b3", "2004-04-04"),
			}, nil
		},
	}

	view := presenterWith(store).Load(context.Background())
	require.Empty(t, view.Error)
	require.Len(t, view.Rows, 3)

	raw := []string{view.Rows[0].RawDate, view.Rows[1].RawDate, view.Rows[2].RawDate}
	assert.Equal(t, []string{"2022-02-15", "2021-01-01", "2004-04-04"}, raw,
		"el listado ordena de más reciente a más antigua")

	// El formato de pantalla no ordena lexicográficamente: por eso se ordena
	// por el crudo y se muestra el corto francés.
	assert.Equal(t, "15 Févr. 22", view.Rows[0].Date)
	assert.Equal(t, "1 Janv. 21", view.Rows[1].Date)
	assert.Equal(t, "4 Avr. 04", view.Rows[2].Date)

	assert.Equal(t, "Mes notes de frais", view.Title)
	assert.Equal(t, bills.PathNewBill, view.NewBillPath,
		"la vista lleva el destino del botón de nueva nota")
}

func TestLoad_EmpatesConservanElOrdenDelStore(t *testing.T) {
	store := &fakeStore{
		listFn: func(context.Context, string) ([]entity.Bill, error) {
			return []entity.Bill{
				billOn("primera", "2022-02-15"),
				billOn("segunda", "2022-02-15"),
				billOn("antigua", "2004-04-04"),
				billOn("tercera", "2022-02-15"),
			}, nil
		},
	}

	view := presenterWith(store).Load(context.Background())
	require.Len(t, view.Rows, 4)
	ids := []string{view.Rows[0].ID, view.Rows[1].ID, view.Rows[2].ID, view.Rows[3].ID}
	assert.Equal(t, []string{"primera", "segunda", "tercera", "antigua"}, ids,
		"fechas iguales conservan el orden devuelto por el store (orden estable)")
}

func TestLoad_FechaCorruptaSeMuestraCrudaYNoSeDescarta(t *testing.T) {
	store := &fakeStore{
		listFn: func(context.Context, string) ([]entity.Bill, error) {
			return []entity.Bill{
				billOn("ok", "2022-02-15"),
				billOn("rota", "pas-une-date"),
			}, nil
		},
	}

	view := presenterWith(store).Load(context.Background())
	require.Len(t, view.Rows, 2, "la fila con fecha corrupta nunca se descarta")

	var corrupted *bills.ListRow
	for i := range view.Rows {
		if view.Rows[i].ID == "rota" {
			corrupted = &view.Rows[i]
		}
	}
	require.NotNil(t, corrupted)
	assert.Equal(t, "pas-une-date", corrupted.Date, "la fecha corrupta se muestra tal cual está almacenada")
}

func TestLoad_EtiquetasDeEstado(t *testing.T) {
	accepted := billOn("b1", "2022-02-15")
	accepted.Status = entity.BillStatusAccepted
	store := &fakeStore{
		listFn: func(context.Context, string) ([]entity.Bill, error) {
			return []entity.Bill{accepted}, nil
		},
	}

	view := presenterWith(store).Load(context.Background())
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "accepted", view.Rows[0].Status)
	assert.Equal(t, "Accepté", view.Rows[0].StatusLabel)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del store: tres salidas observables
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_Erreur404(t *testing.T) {
	store := &fakeStore{
		listFn: func(context.Context, string) ([]entity.Bill, error) {
			return nil, storeerr.New(storeerr.KindNotFound, "collection bills absente")
		},
	}

	view := presenterWith(store).Load(context.Background())
	assert.Equal(t, "Erreur 404", view.Error)
	assert.Empty(t, view.Rows, "con error mostrado la zona de listado queda vacía")
	assert.Equal(t, bills.PathNewBill, view.NewBillPath,
		"el botón de nueva nota sigue presente en la vista de error")
}

func TestLoad_Erreur500(t *testing.T) {
	store := &fakeStore{
		listFn: func(context.Context, string) ([]entity.Bill, error) {
			return nil, storeerr.New(storeerr.KindInternal, "panne du store")
		},
	}

	view := presenterWith(store).Load(context.Background())
	assert.Equal(t, "Erreur 500", view.Error)
	assert.Empty(t, view.Rows)
}

// Shim de compatibilidad: un store ajeno que devuelve errores planos se
// clasifica por los tokens "404"/"500" del mensaje.
func TestLoad_ErrorPlanoClasificadoPorSubstring(t *testing.T) {
	cases := map[string]string{
		"request failed with status 404": "Erreur 404",
		"Erreur 500":                     "Erreur 500",
		"connexion refusée":              "connexion refusée",
	}
	for msg, expected := range cases {
		store := &fakeStore{
			listFn: func(context.Context, string) ([]entity.Bill, error) {
				return nil, errors.New(msg)
			},
		}
		view := presenterWith(store).Load(context.Background())
		assert.Equal(t, expected, view.Error, "mensaje %q", msg)
	}
}

func TestLoad_ListadoScopedAlEmail(t *testing.T) {
	var askedEmail string
	store := &fakeStore{
		listFn: func(_ context.Context, email string) ([]entity.Bill, error) {
			askedEmail = email
			return nil, nil
		},
	}

	bills.NewListPresenter(store, session.Identity{Type: session.UserTypeEmployee, Email: "b@b.com"}, nil).
		Load(context.Background())
	assert.Equal(t, "b@b.com", askedEmail, "el presenter pide solo las notas de la identidad inyectada")
}
