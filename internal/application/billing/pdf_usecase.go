package billing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/invoicething/internal/domain"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

// PDFUseCase genera el PDF de una factura del usuario.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		generator:    generator,
	}
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DownloadInvoicePDF reúne factura, cliente, emisor, líneas y gastos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura es de otro usuario.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	inv, err := ownedInvoice(ctx, uc.invoiceRepo, userID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	issuer, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener usuario: %w", err)
	}
	if issuer == nil {
		return nil, "", domain.ErrUserNotFound
	}
	client, err := uc.clientRepo.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	items, err := uc.invoiceRepo.GetLineItems(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	claims, err := uc.invoiceRepo.GetClaims(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener gastos: %w", err)
	}
	settings, err := uc.settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener configuración: %w", err)
	}

	doc := &InvoiceDocument{
		Invoice:   inv,
		Client:    client,
		Issuer:    issuer,
		LineItems: items,
		Claims:    claims,
	}
	if settings != nil {
		doc.PaymentInstructions = settings.PaymentInstructions
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, InvoiceFilename(inv.InvoiceNumber), nil
}

// InvoiceFilename nombre de descarga a partir del número de factura.
func InvoiceFilename(invoiceNumber string) string {
	name := unsafeFilename.ReplaceAllString(invoiceNumber, "_")
	if name == "" || name == "_" {
		name = "invoice"
	}
	return name + ".pdf"
}
