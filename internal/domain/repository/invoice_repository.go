package repository

import (
	"context"
	"time"

	"github.com/jhoicas/invoicething/internal/domain/entity"
)

// InvoiceFilter filtros opcionales del listado. Campos vacíos = sin filtro.
type InvoiceFilter struct {
	ClientID string
	Status   entity.InvoiceStatus
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus hijos
// (líneas y gastos). Las operaciones de varias filas se ejecutan dentro de
// una transacción abierta por el caller (ver billing.InvoiceTxRunner).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// ListByUser devuelve las facturas del usuario, más recientes primero
	// (issue_date DESC, created_at DESC).
	ListByUser(ctx context.Context, userID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// GetLatestByUser devuelve la última factura emitida; (nil, nil) si no hay ninguna.
	GetLatestByUser(ctx context.Context, userID string) (*entity.Invoice, error)
	// Update reescribe cabecera y montos (no toca líneas ni gastos).
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error
	// Delete borra la cabecera. Líneas y gastos deben borrarse antes en la misma transacción.
	Delete(ctx context.Context, id string) error

	CreateLineItem(ctx context.Context, item *entity.LineItem) error
	// GetLineItems devuelve las líneas ordenadas por Order.
	GetLineItems(ctx context.Context, invoiceID string) ([]*entity.LineItem, error)
	DeleteLineItems(ctx context.Context, invoiceID string) error

	CreateClaim(ctx context.Context, claim *entity.Claim) error
	// GetClaims devuelve los gastos ordenados por Order.
	GetClaims(ctx context.Context, invoiceID string) ([]*entity.Claim, error)
	DeleteClaims(ctx context.Context, invoiceID string) error
}
