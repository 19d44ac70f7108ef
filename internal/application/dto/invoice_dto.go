package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea de factura.
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ClaimRequest gasto reembolsable. AttachmentID es la clave devuelta por
// POST /api/files/upload-url.
type ClaimRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         int64           `json:"date"`
	AttachmentID string          `json:"attachment_id,omitempty"`
}

// InvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// En la edición las líneas y gastos enviados reemplazan a los existentes.
type InvoiceRequest struct {
	ClientID          string            `json:"client_id"`
	InvoiceNumber     string            `json:"invoice_number"`
	IssueDate         int64             `json:"issue_date"`
	DueDate           int64             `json:"due_date"`
	Status            string            `json:"status,omitempty"` // por defecto draft
	TaxRate           *decimal.Decimal  `json:"tax_rate,omitempty"`
	RoundingIncrement *decimal.Decimal  `json:"rounding_increment,omitempty"`
	RoundingEnabled   *bool             `json:"rounding_enabled,omitempty"` // false = sin redondeo aunque settings lo tenga
	Notes             string            `json:"notes,omitempty"`
	LineItems         []LineItemRequest `json:"line_items"`
	Claims            []ClaimRequest    `json:"claims,omitempty"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Order       int             `json:"order"`
}

// ClaimResponse gasto en respuestas.
type ClaimResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         int64           `json:"date"`
	Order        int             `json:"order"`
	AttachmentID string          `json:"attachment_id,omitempty"`
}

// InvoiceResponse factura con su cliente. Las líneas y gastos solo se incluyen
// en el detalle (GET /api/invoices/:id).
type InvoiceResponse struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"user_id"`
	ClientID           string             `json:"client_id"`
	InvoiceNumber      string             `json:"invoice_number"`
	IssueDate          int64              `json:"issue_date"`
	DueDate            int64              `json:"due_date"`
	Status             string             `json:"status"`
	TaxRate            decimal.Decimal    `json:"tax_rate"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	Tax                decimal.Decimal    `json:"tax"`
	Total              decimal.Decimal    `json:"total"`
	RoundingAdjustment *decimal.Decimal   `json:"rounding_adjustment,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	CreatedAt          int64              `json:"created_at"`
	UpdatedAt          int64              `json:"updated_at"`
	Client             *ClientResponse    `json:"client,omitempty"`
	LineItems          []LineItemResponse `json:"line_items,omitempty"`
	Claims             []ClaimResponse    `json:"claims,omitempty"`
}

// UpdateStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BulkStatusRequest body para PATCH /api/invoices/status.
type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}
