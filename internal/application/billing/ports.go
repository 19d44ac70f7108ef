package billing

import (
	"context"

	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una transacción con repos de facturas y
// clientes atados a ella. Si fn devuelve error se hace rollback completo.
type InvoiceTxRunner interface {
	RunInvoices(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// AttachmentStore almacén de recibos de gastos. Las claves son opacas para el
// dominio; el use case las prefija con el usuario dueño.
type AttachmentStore interface {
	// UploadURL devuelve una URL prefirmada para subir el objeto con esa clave.
	UploadURL(ctx context.Context, key string) (string, error)
	// URL devuelve una URL de lectura; "" si el objeto no existe.
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// InvoicePDFGenerator genera la representación en PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceDocument datos que necesita el generador de PDF.
type InvoiceDocument struct {
	Invoice             *entity.Invoice
	Client              *entity.Client // nil si el cliente ya no existe
	Issuer              *entity.User
	LineItems           []*entity.LineItem
	Claims              []*entity.Claim
	PaymentInstructions string
}
