package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Errores de validación de la entidad.
var (
	errRequiredFields     = errors.New("bill: faltan campos obligatorios (type, name, date, status)")
	errUnknownExpenseType = errors.New("bill: categoría fuera del catálogo")
	errNegativeAmount     = errors.New("bill: amount negativo")
	errNegativeVAT        = errors.New("bill: vat negativo")
)

// Estados de una nota de frais. Un empleado siempre crea en "pending";
// "accepted"/"refused" solo los asignan los flujos de revisión privilegiados.
const (
	BillStatusPending  BillStatus = "pending"
	BillStatusAccepted BillStatus = "accepted"
	BillStatusRefused  BillStatus = "refused"
)

// BillStatus estado del ciclo de revisión de una nota.
type BillStatus string

// StatusLabel etiqueta de UI del estado (wording de la aplicación Billed).
func (s BillStatus) StatusLabel() string {
	switch s {
	case BillStatusPending:
		return "En attente"
	case BillStatusAccepted:
		return "Accepté"
	case BillStatusRefused:
		return "Refusé"
	default:
		return string(s)
	}
}

// ExpenseTypes catálogo fijo de categorías del formulario (opciones del select).
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// IsExpenseType indica si el valor pertenece al catálogo de categorías.
func IsExpenseType(s string) bool {
	for _, t := range ExpenseTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Bill representa una nota de frais enviada por un empleado.
// Date se conserva como texto ISO 8601 (YYYY-MM-DD) tal como lo entrega el
// store remoto: el valor crudo es el que ordena el listado, el formateo de
// pantalla se hace aparte.
type Bill struct {
	ID         string
	Type       string
	Name       string
	Date       string
	Amount     decimal.Decimal
	VAT        decimal.NullDecimal // opcional: ausente != cero
	Pct        decimal.Decimal
	Commentary string
	FileURL    string
	FileName   string
	Status     BillStatus
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate verifica los campos obligatorios antes de cualquier persistencia:
// una nota nunca se crea ni se actualiza sin type, name, date, amount, pct y status.
func (b Bill) Validate() error {
	if b.Type == "" || b.Name == "" || b.Date == "" || b.Status == "" {
		return errRequiredFields
	}
	if !IsExpenseType(b.Type) {
		return errUnknownExpenseType
	}
	if b.Amount.IsNegative() {
		return errNegativeAmount
	}
	if b.VAT.Valid && b.VAT.Decimal.IsNegative() {
		return errNegativeVAT
	}
	return nil
}

// HasReceipt indica si la nota ya tiene el justificante adjunto.
// FileURL y FileName se asignan juntos o ninguno.
func (b Bill) HasReceipt() bool {
	return b.FileURL != "" && b.FileName != ""
}
