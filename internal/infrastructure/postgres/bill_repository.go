// Adaptador PostgreSQL del store de notas de frais.
//
// Esquema esperado:
//
//	CREATE TABLE bills (
//	    id           TEXT PRIMARY KEY,
//	    type         TEXT,
//	    name         TEXT,
//	    date         TEXT,
//	    amount       NUMERIC,
//	    vat          NUMERIC,
//	    pct          NUMERIC,
//	    commentary   TEXT,
//	    file_url     TEXT,
//	    file_name    TEXT,
//	    storage_name TEXT,
//	    status       TEXT NOT NULL,
//	    email        TEXT NOT NULL,
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    updated_at   TIMESTAMPTZ NOT NULL
//	);
//
// El alta es en dos fases por contrato del store: Create reserva la fila con
// el justificante y el email (fase 1), Update completa los campos (fase 2).
// Las filas de fase 1 que nunca se completaron quedan sin date y el listado
// las excluye.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/billed-app/billed-api/internal/domain/entity"
	"github.com/billed-app/billed-api/internal/domain/repository"
	"github.com/billed-app/billed-api/internal/domain/storeerr"
	"github.com/billed-app/billed-api/internal/infrastructure/receiptstore"
)

var _ repository.BillStore = (*BillRepo)(nil)
var _ repository.ReceiptSource = (*BillRepo)(nil)

// BillRepo implementación de BillStore (usable con pool o tx).
type BillRepo struct {
	q        Querier
	receipts *receiptstore.ReceiptStore
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier, receipts *receiptstore.ReceiptStore) *BillRepo {
	return &BillRepo{q: q, receipts: receipts}
}

const billColumns = `
	id, COALESCE(type, ''), COALESCE(name, ''), COALESCE(date, ''),
	COALESCE(amount, 0), vat, COALESCE(pct, 0), COALESCE(commentary, ''),
	COALESCE(file_url, ''), COALESCE(file_name, ''), status, email,
	created_at, updated_at`

// List devuelve las notas del email dado. Las filas de fase 1 sin fecha no
// entran al listado; el orden lo decide el presenter, no el SQL.
func (r *BillRepo) List(ctx context.Context, email string) ([]entity.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE email = $1 AND date IS NOT NULL AND date <> ''`
	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", err)
	}
	defer rows.Close()

	var list []entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", err)
	}
	return list, nil
}

// Create fase 1 del alta: guarda el justificante en disco y reserva la fila
// con id, email y referencia al fichero.
func (r *BillRepo) Create(ctx context.Context, in repository.CreateBillInput) (*repository.CreateBillResult, error) {
	storageName, err := r.receipts.Save(in.Receipt, in.FileName)
	if err != nil {
		return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", err)
	}

	id := uuid.New().String()
	fileURL := "/api/bills/" + id + "/receipt"
	now := time.Now().UTC()
	query := `
		INSERT INTO bills (id, file_url, file_name, storage_name, status, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		id, fileURL, in.FileName, storageName, string(entity.BillStatusPending), in.Email, now, now,
	)
	if err != nil {
		return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", fmt.Errorf("insert bill: %w", err))
	}
	return &repository.CreateBillResult{ID: id, FileURL: fileURL, FileName: in.FileName}, nil
}

// Update fase 2 del alta: completa la fila con todos los campos de la nota.
func (r *BillRepo) Update(ctx context.Context, id string, bill entity.Bill) (*entity.Bill, error) {
	query := `
		UPDATE bills
		SET type       = $2,
		    name       = $3,
		    date       = $4,
		    amount     = $5,
		    vat        = $6,
		    pct        = $7,
		    commentary = $8,
		    file_url   = COALESCE(NULLIF($9, ''),  file_url),
		    file_name  = COALESCE(NULLIF($10, ''), file_name),
		    status     = $11,
		    email      = $12,
		    updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		id, bill.Type, bill.Name, bill.Date, bill.Amount, bill.VAT, bill.Pct,
		bill.Commentary, bill.FileURL, bill.FileName, string(bill.Status),
		bill.Email, time.Now().UTC(),
	)
	if err != nil {
		return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", fmt.Errorf("update bill: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return nil, storeerr.New(storeerr.KindNotFound, "Erreur 404")
	}
	return r.GetByID(ctx, id)
}

// GetByID obtiene una nota por id. Sin fila devuelve (nil, nil), como el
// resto de adaptadores.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills WHERE id = $1`
	b, err := scanBill(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeerr.Wrap(storeerr.KindInternal, "Erreur 500", fmt.Errorf("get bill: %w", err))
	}
	return &b, nil
}

// OpenReceipt abre el contenido del justificante de la nota dada.
func (r *BillRepo) OpenReceipt(ctx context.Context, id string) (io.ReadCloser, string, error) {
	var storageName, fileName string
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(storage_name, ''), COALESCE(file_name, '') FROM bills WHERE id = $1`, id,
	).Scan(&storageName, &fileName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", storeerr.New(storeerr.KindNotFound, "Erreur 404")
		}
		return nil, "", storeerr.Wrap(storeerr.KindInternal, "Erreur 500", err)
	}
	if storageName == "" {
		return nil, "", storeerr.New(storeerr.KindNotFound, "Erreur 404")
	}
	rc, err := r.receipts.Open(storageName)
	if err != nil {
		return nil, "", storeerr.Wrap(storeerr.KindInternal, "Erreur 500", err)
	}
	return rc, receiptstore.ContentType(fileName), nil
}

// scanBill mapea una fila (billColumns) a la entidad.
func scanBill(row pgx.Row) (entity.Bill, error) {
	var b entity.Bill
	var status string
	err := row.Scan(
		&b.ID, &b.Type, &b.Name, &b.Date,
		&b.Amount, &b.VAT, &b.Pct, &b.Commentary,
		&b.FileURL, &b.FileName, &status, &b.Email,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return entity.Bill{}, err
	}
	b.Status = entity.BillStatus(status)
	return b, nil
}
