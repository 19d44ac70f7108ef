package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, client_id, invoice_number, issue_date, due_date, status,
	tax_rate, subtotal, tax, total, rounding_adjustment, notes, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ClientID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &status,
		&inv.TaxRate, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.RoundingAdjustment, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}

// Create persiste la cabecera de la factura con sus montos ya calculados.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.UserID, inv.ClientID, inv.InvoiceNumber, inv.IssueDate, inv.DueDate, string(inv.Status),
		inv.TaxRate, inv.Subtotal, inv.Tax, inv.Total, inv.RoundingAdjustment, inv.Notes,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
// Un ID con formato inválido se trata como inexistente.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if isMissingRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByUser lista las facturas del usuario, más recientes primero.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string, filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	conds := []string{"user_id = $1"}
	args := []any{userID}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conds = append(conds, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY issue_date DESC, created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// GetLatestByUser devuelve la factura con la fecha de emisión más reciente.
func (r *InvoiceRepo) GetLatestByUser(ctx context.Context, userID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1
		ORDER BY issue_date DESC, created_at DESC LIMIT 1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest invoice: %w", err)
	}
	return inv, nil
}

// Update reescribe cabecera y montos.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $2, invoice_number = $3, issue_date = $4, due_date = $5, status = $6,
		    tax_rate = $7, subtotal = $8, tax = $9, total = $10, rounding_adjustment = $11,
		    notes = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClientID, inv.InvoiceNumber, inv.IssueDate, inv.DueDate, string(inv.Status),
		inv.TaxRate, inv.Subtotal, inv.Tax, inv.Total, inv.RoundingAdjustment,
		inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, status entity.InvoiceStatus, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// Delete elimina la cabecera.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea.
func (r *InvoiceRepo) CreateLineItem(ctx context.Context, li *entity.LineItem) error {
	if li.ID == "" {
		li.ID = uuid.New().String()
	}
	query := `
		INSERT INTO line_items (id, invoice_id, description, quantity, unit_price, total, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		li.ID, li.InvoiceID, li.Description, li.Quantity, li.UnitPrice, li.Total, li.Order,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// GetLineItems devuelve las líneas de la factura en orden.
func (r *InvoiceRepo) GetLineItems(ctx context.Context, invoiceID string) ([]*entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, total, sort_order
		FROM line_items WHERE invoice_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.LineItem
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total, &li.Order); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &li)
	}
	return list, rows.Err()
}

// DeleteLineItems borra todas las líneas de la factura.
func (r *InvoiceRepo) DeleteLineItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM line_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete line items: %w", err)
	}
	return nil
}

// CreateClaim persiste un gasto.
func (r *InvoiceRepo) CreateClaim(ctx context.Context, c *entity.Claim) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO claims (id, invoice_id, description, amount, claim_date, sort_order, attachment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.InvoiceID, c.Description, c.Amount, c.Date, c.Order, c.AttachmentID,
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// GetClaims devuelve los gastos de la factura en orden.
func (r *InvoiceRepo) GetClaims(ctx context.Context, invoiceID string) ([]*entity.Claim, error) {
	query := `
		SELECT id, invoice_id, description, amount, claim_date, sort_order, attachment_id
		FROM claims WHERE invoice_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()
	var list []*entity.Claim
	for rows.Next() {
		var c entity.Claim
		if err := rows.Scan(&c.ID, &c.InvoiceID, &c.Description, &c.Amount, &c.Date, &c.Order, &c.AttachmentID); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// DeleteClaims borra todos los gastos de la factura.
func (r *InvoiceRepo) DeleteClaims(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM claims WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete claims: %w", err)
	}
	return nil
}
