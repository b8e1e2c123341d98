package dto

import "github.com/shopspring/decimal"

// NewBillForm campos del formulario de nueva nota, en su forma textual.
// Los nombres JSON replican los test ids del formulario original para que el
// front existente mapee 1:1. El parseo numérico ocurre en el envío, no aquí.
type NewBillForm struct {
	Type       string `json:"expense-type" form:"expense-type"`
	Name       string `json:"expense-name" form:"expense-name"`
	Date       string `json:"datepicker" form:"datepicker"`
	Amount     string `json:"amount" form:"amount"`
	VAT        string `json:"vat" form:"vat"`
	Pct        string `json:"pct" form:"pct"`
	Commentary string `json:"commentary" form:"commentary"`
}

// BillResponse nota de frais en respuestas.
type BillResponse struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	Name       string              `json:"name"`
	Date       string              `json:"date"`
	Amount     decimal.Decimal     `json:"amount"`
	VAT        decimal.NullDecimal `json:"vat"`
	Pct        decimal.Decimal     `json:"pct"`
	Commentary string              `json:"commentary,omitempty"`
	FileURL    string              `json:"fileUrl,omitempty"`
	FileName   string              `json:"fileName,omitempty"`
	Status     string              `json:"status"`
	Email      string              `json:"email"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
