// Package billing contiene los casos de uso de facturas: alta, edición con
// reemplazo completo de líneas y gastos, cambios de estado, borrado en cascada,
// sugerencia de numeración, adjuntos y exportación a PDF.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/invoicing"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/pkg/logger"
	"github.com/shopspring/decimal"
)

// InvoiceUseCase orquesta la persistencia de facturas alrededor del calculador.
// Los montos se derivan siempre en el servidor; el cliente solo envía cantidades y precios.
type InvoiceUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
	tx           InvoiceTxRunner
	log          *logger.Logger
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
	tx InvoiceTxRunner,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		tx:           tx,
		log:          log.Component("invoices"),
		now:          time.Now,
	}
}

// draft resultado de validar y calcular un InvoiceRequest.
type draft struct {
	clientID      string
	invoiceNumber string
	issueDate     time.Time
	dueDate       time.Time
	status        entity.InvoiceStatus
	taxRate       decimal.Decimal
	notes         string
	result        invoicing.Result
}

// Create valida, calcula y persiste la factura con sus líneas y gastos en una transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	if strings.TrimSpace(in.Status) == "" {
		in.Status = string(entity.InvoiceStatusDraft)
	}
	d, err := uc.prepare(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
	}
	d.applyTo(inv, now)

	var client *entity.Client
	err = uc.tx.RunInvoices(ctx, func(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository) error {
		client, err = ownedClient(ctx, clientRepo, userID, d.clientID)
		if err != nil {
			return err
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		return insertChildren(ctx, invoiceRepo, inv.ID, d.result)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", userID).Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).Str("total", inv.Total.String()).Msg("factura creada")
	return uc.detail(ctx, inv, client)
}

// Update reemplaza cabecera, líneas y gastos de la factura en una transacción.
// Si no se envía estado se conserva el actual.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.InvoiceRequest) (*dto.InvoiceResponse, error) {
	d, err := uc.prepare(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	var client *entity.Client
	err = uc.tx.RunInvoices(ctx, func(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository) error {
		inv, err = ownedInvoice(ctx, invoiceRepo, userID, id)
		if err != nil {
			return err
		}
		client, err = ownedClient(ctx, clientRepo, userID, d.clientID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(in.Status) == "" {
			d.status = inv.Status
		}
		d.applyTo(inv, uc.now())
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		if err := deleteChildren(ctx, invoiceRepo, inv.ID); err != nil {
			return err
		}
		return insertChildren(ctx, invoiceRepo, inv.ID, d.result)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", userID).Str("invoice_id", id).Msg("factura actualizada")
	return uc.detail(ctx, inv, client)
}

// Get devuelve la factura con su cliente, líneas y gastos ordenados.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := ownedInvoice(ctx, uc.invoiceRepo, userID, id)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}
	return uc.detail(ctx, inv, client)
}

// List devuelve las facturas del usuario con su cliente, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, filter repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, filter.Status)
	}
	if filter.ClientID != "" {
		if _, err := ownedClient(ctx, uc.clientRepo, userID, filter.ClientID); err != nil {
			return nil, err
		}
	}

	invoices, err := uc.invoiceRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clientRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.NewInvoiceResponse(inv, byID[inv.ClientID]))
	}
	return out, nil
}

// ListByClient devuelve las facturas de un cliente del usuario.
func (uc *InvoiceUseCase) ListByClient(ctx context.Context, userID, clientID string) ([]*dto.InvoiceResponse, error) {
	return uc.List(ctx, userID, repository.InvoiceFilter{ClientID: clientID})
}

// UpdateStatus cambia el estado de una factura. Cualquier estado puede pasar a cualquier otro.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, userID, id, status string) (*dto.InvoiceResponse, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	inv, err := ownedInvoice(ctx, uc.invoiceRepo, userID, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, st, now); err != nil {
		return nil, err
	}
	inv.Status = st
	inv.UpdatedAt = now
	return dto.NewInvoiceResponse(inv, nil), nil
}

// UpdateStatusBulk cambia el estado de varias facturas en una transacción.
// Los IDs inexistentes se ignoran; uno ajeno aborta todo el lote con domain.ErrForbidden.
func (uc *InvoiceUseCase) UpdateStatusBulk(ctx context.Context, userID string, ids []string, status string) (*dto.BulkResult, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	affected := 0
	err = uc.tx.RunInvoices(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.ClientRepository) error {
		return forEachOwned(ctx, invoiceRepo, userID, ids, func(inv *entity.Invoice) error {
			affected++
			return invoiceRepo.UpdateStatus(ctx, inv.ID, st, now)
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Int("affected", affected).Str("status", string(st)).Msg("estado masivo actualizado")
	return &dto.BulkResult{Affected: affected}, nil
}

// Delete borra la factura junto con sus líneas y gastos en una transacción.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.tx.RunInvoices(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.ClientRepository) error {
		inv, err := ownedInvoice(ctx, invoiceRepo, userID, id)
		if err != nil {
			return err
		}
		return deleteInvoice(ctx, invoiceRepo, inv.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// DeleteMany borra varias facturas (con sus hijos) en una sola transacción.
// Misma política que UpdateStatusBulk para IDs inexistentes o ajenos.
func (uc *InvoiceUseCase) DeleteMany(ctx context.Context, userID string, ids []string) (*dto.BulkResult, error) {
	affected := 0
	err := uc.tx.RunInvoices(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.ClientRepository) error {
		return forEachOwned(ctx, invoiceRepo, userID, ids, func(inv *entity.Invoice) error {
			affected++
			return deleteInvoice(ctx, invoiceRepo, inv.ID)
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Int("affected", affected).Msg("facturas eliminadas")
	return &dto.BulkResult{Affected: affected}, nil
}

// NextInvoiceNumber sugiere el siguiente número y los valores por defecto de
// una factura nueva. Es una sugerencia: no se reserva el número.
func (uc *InvoiceUseCase) NextInvoiceNumber(ctx context.Context, userID string) (*dto.NextInvoiceResponse, error) {
	settings, err := uc.settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	last, err := uc.invoiceRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	effective := settings
	if effective == nil {
		effective = entity.DefaultSettings(userID)
	}
	now := uc.now().UTC()
	issue := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &dto.NextInvoiceResponse{
		InvoiceNumber:       invoicing.NextInvoiceNumber(settings, last),
		IssueDate:           dto.Millis(issue),
		DueDate:             dto.Millis(issue.AddDate(0, 0, effective.DueDateDays)),
		TaxRate:             effective.TaxRate,
		RoundingIncrement:   effective.Rounding(),
		PaymentInstructions: effective.PaymentInstructions,
	}, nil
}

// prepare valida la petición y corre el calculador. No toca la base salvo para
// leer la configuración de redondeo cuando la petición no trae incremento.
func (uc *InvoiceUseCase) prepare(ctx context.Context, userID string, in dto.InvoiceRequest) (*draft, error) {
	d := &draft{
		clientID:      strings.TrimSpace(in.ClientID),
		invoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		notes:         strings.TrimSpace(in.Notes),
	}
	if d.clientID == "" {
		return nil, fmt.Errorf("%w: client_id es obligatorio", domain.ErrInvalidInput)
	}
	if d.invoiceNumber == "" {
		return nil, fmt.Errorf("%w: invoice_number es obligatorio", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Status) != "" {
		st, err := parseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		d.status = st
	}
	if len(in.LineItems) == 0 && len(in.Claims) == 0 {
		return nil, fmt.Errorf("%w: la factura necesita al menos una línea o un gasto", domain.ErrInvalidInput)
	}

	d.issueDate = dto.FromMillis(in.IssueDate)
	if d.issueDate.IsZero() {
		d.issueDate = uc.now().UTC()
	}

	calc := invoicing.Input{RoundingIncrement: in.RoundingIncrement}
	if in.TaxRate != nil {
		calc.TaxRate = *in.TaxRate
	}
	roundingOff := in.RoundingEnabled != nil && !*in.RoundingEnabled
	if roundingOff {
		calc.RoundingIncrement = nil
	}
	inheritRounding := in.RoundingIncrement == nil && !roundingOff

	var settings *entity.Settings
	if inheritRounding || in.DueDate == 0 {
		s, err := uc.settingsRepo.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		settings = s
	}
	if inheritRounding {
		calc.RoundingIncrement = settings.Rounding()
	}

	d.dueDate = dto.FromMillis(in.DueDate)
	if d.dueDate.IsZero() {
		days := entity.DefaultDueDateDays
		if settings != nil {
			days = settings.DueDateDays
		}
		d.dueDate = d.issueDate.AddDate(0, 0, days)
	}

	prefix := AttachmentKeyPrefix(userID)
	for _, li := range in.LineItems {
		calc.LineItems = append(calc.LineItems, invoicing.LineItemInput{
			Description: strings.TrimSpace(li.Description),
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	for i, c := range in.Claims {
		attachment := strings.TrimSpace(c.AttachmentID)
		if attachment != "" && !strings.HasPrefix(attachment, prefix) {
			return nil, fmt.Errorf("%w: claims[%d].attachment_id no pertenece al usuario", domain.ErrForbidden, i)
		}
		date := dto.FromMillis(c.Date)
		if date.IsZero() {
			date = d.issueDate
		}
		calc.Claims = append(calc.Claims, invoicing.ClaimInput{
			Description:  strings.TrimSpace(c.Description),
			Amount:       c.Amount,
			Date:         date,
			AttachmentID: attachment,
		})
	}

	if err := invoicing.Validate(calc); err != nil {
		return nil, err
	}
	d.taxRate = calc.TaxRate
	d.result = invoicing.Calculate(calc)
	return d, nil
}

func (d *draft) applyTo(inv *entity.Invoice, now time.Time) {
	inv.ClientID = d.clientID
	inv.InvoiceNumber = d.invoiceNumber
	inv.IssueDate = d.issueDate
	inv.DueDate = d.dueDate
	inv.Status = d.status
	inv.TaxRate = d.taxRate
	inv.Subtotal = d.result.Subtotal
	inv.Tax = d.result.Tax
	inv.Total = d.result.Total
	inv.RoundingAdjustment = d.result.RoundingAdjustment
	inv.Notes = d.notes
	inv.UpdatedAt = now
}

func (uc *InvoiceUseCase) detail(ctx context.Context, inv *entity.Invoice, client *entity.Client) (*dto.InvoiceResponse, error) {
	items, err := uc.invoiceRepo.GetLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	claims, err := uc.invoiceRepo.GetClaims(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv, client).WithChildren(items, claims), nil
}

func insertChildren(ctx context.Context, repo repository.InvoiceRepository, invoiceID string, res invoicing.Result) error {
	for _, li := range res.LineItems {
		if err := repo.CreateLineItem(ctx, &entity.LineItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total,
			Order:       li.Order,
		}); err != nil {
			return err
		}
	}
	for _, c := range res.Claims {
		if err := repo.CreateClaim(ctx, &entity.Claim{
			ID:           uuid.New().String(),
			InvoiceID:    invoiceID,
			Description:  c.Description,
			Amount:       c.Amount,
			Date:         c.Date,
			Order:        c.Order,
			AttachmentID: c.AttachmentID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func deleteChildren(ctx context.Context, repo repository.InvoiceRepository, invoiceID string) error {
	if err := repo.DeleteLineItems(ctx, invoiceID); err != nil {
		return err
	}
	return repo.DeleteClaims(ctx, invoiceID)
}

func deleteInvoice(ctx context.Context, repo repository.InvoiceRepository, invoiceID string) error {
	if err := deleteChildren(ctx, repo, invoiceID); err != nil {
		return err
	}
	return repo.Delete(ctx, invoiceID)
}

// forEachOwned aplica fn a cada factura del lote (IDs repetidos una sola vez).
func forEachOwned(ctx context.Context, repo repository.InvoiceRepository, userID string, ids []string, fn func(*entity.Invoice) error) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		inv, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			continue
		}
		if inv.UserID != userID {
			return fmt.Errorf("%w: factura %s", domain.ErrForbidden, id)
		}
		if err := fn(inv); err != nil {
			return err
		}
	}
	return nil
}

func ownedInvoice(ctx context.Context, repo repository.InvoiceRepository, userID, id string) (*entity.Invoice, error) {
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

func ownedClient(ctx context.Context, repo repository.ClientRepository, userID, id string) (*entity.Client, error) {
	client, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: el cliente %s no existe", domain.ErrInvalidInput, id)
	}
	if client.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func parseStatus(s string) (entity.InvoiceStatus, error) {
	st := entity.InvoiceStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, s)
	}
	return st, nil
}
