package dto

import "github.com/shopspring/decimal"

// SettingsResponse configuración de facturación. Si el usuario nunca la guardó
// se devuelven los valores por defecto con ID vacío.
type SettingsResponse struct {
	ID                  string          `json:"id,omitempty"`
	InvoicePrefix       string          `json:"invoice_prefix"`
	InvoiceNumberStart  int             `json:"invoice_number_start"`
	DueDateDays         int             `json:"due_date_days"`
	TaxRate             decimal.Decimal `json:"tax_rate"`
	PaymentInstructions string          `json:"payment_instructions,omitempty"`
	RoundingEnabled     bool            `json:"rounding_enabled"`
	RoundingIncrement   decimal.Decimal `json:"rounding_increment"`
	CreatedAt           int64           `json:"created_at,omitempty"`
	UpdatedAt           int64           `json:"updated_at,omitempty"`
}

// UpsertSettingsRequest body para PUT /api/settings. Campos ausentes conservan
// su valor actual (o el por defecto si es la primera vez).
type UpsertSettingsRequest struct {
	InvoicePrefix       *string          `json:"invoice_prefix,omitempty"`
	InvoiceNumberStart  *int             `json:"invoice_number_start,omitempty"`
	DueDateDays         *int             `json:"due_date_days,omitempty"`
	TaxRate             *decimal.Decimal `json:"tax_rate,omitempty"`
	PaymentInstructions *string          `json:"payment_instructions,omitempty"`
	RoundingEnabled     *bool            `json:"rounding_enabled,omitempty"`
	RoundingIncrement   *decimal.Decimal `json:"rounding_increment,omitempty"`
}

// NextInvoiceResponse respuesta de GET /api/invoices/next-number: número
// sugerido y valores por defecto para una factura nueva.
type NextInvoiceResponse struct {
	InvoiceNumber       string           `json:"invoice_number"`
	IssueDate           int64            `json:"issue_date"`
	DueDate             int64            `json:"due_date"`
	TaxRate             decimal.Decimal  `json:"tax_rate"`
	RoundingIncrement   *decimal.Decimal `json:"rounding_increment,omitempty"`
	PaymentInstructions string           `json:"payment_instructions,omitempty"`
}
