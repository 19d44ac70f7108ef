package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura. Es un enum plano: cualquier estado
// puede pasar a cualquier otro.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses en el orden en que se muestran.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue,
}

// Valid indica si el estado pertenece al enum.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Outstanding indica si la factura cuenta como pendiente de cobro.
func (s InvoiceStatus) Outstanding() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusOverdue
}

// Invoice representa la cabecera de una factura. Subtotal, Tax y Total se
// calculan al crear/editar y se guardan; no se recalculan al leer.
type Invoice struct {
	ID                 string
	UserID             string
	ClientID           string
	InvoiceNumber      string // texto libre, sin unicidad garantizada
	IssueDate          time.Time
	DueDate            time.Time
	Status             InvoiceStatus
	TaxRate            decimal.Decimal
	Subtotal           decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	RoundingAdjustment decimal.Decimal // cero si no hubo redondeo
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InvoiceWithClient factura con su cliente (nil si el cliente ya no existe).
type InvoiceWithClient struct {
	Invoice *Invoice
	Client  *Client
}
