package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim gasto reembolsable asociado a una factura, con recibo opcional.
type Claim struct {
	ID           string
	InvoiceID    string
	Description  string
	Amount       decimal.Decimal
	Date         time.Time
	Order        int
	AttachmentID string // clave en el almacén de archivos; vacío si no hay recibo
}
