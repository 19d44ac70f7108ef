package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/application/dto"
	"github.com/jhoicas/invoicething/internal/domain/entity"
	"github.com/jhoicas/invoicething/internal/domain/repository"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crea una factura
// @Description  Los montos se calculan en el servidor a partir de líneas, gastos, tasa y redondeo.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.InvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// List godoc
// @Summary  Lista las facturas del usuario, más recientes primero
// @Tags     invoices
// @Security Bearer
// @Produce  json
// @Param    status     query  string  false  "draft | sent | paid | overdue"
// @Param    client_id  query  string  false  "Filtra por cliente"
// @Success  200  {array}   dto.InvoiceResponse
// @Router   /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		ClientID: c.Query("client_id"),
		Status:   entity.InvoiceStatus(c.Query("status")),
	}
	list, err := h.uc.List(c.Context(), GetUserID(c), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID obtiene la factura con cliente, líneas y gastos.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// Update reemplaza cabecera, líneas y gastos.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := h.uc.UpdateStatus(c.Context(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// UpdateStatusBulk godoc
// @Summary      Cambia el estado de varias facturas
// @Description  IDs inexistentes se ignoran; un ID de otro usuario aborta el lote completo.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkStatusRequest  true  "IDs y estado"
// @Success      200   {object}  dto.BulkResult
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/invoices/status [patch]
func (h *InvoiceHandler) UpdateStatusBulk(c *fiber.Ctx) error {
	var in dto.BulkStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.UpdateStatusBulk(c.Context(), GetUserID(c), in.IDs, in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// DeleteMany POST /api/invoices/bulk-delete
func (h *InvoiceHandler) DeleteMany(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.DeleteMany(c.Context(), GetUserID(c), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// NextNumber godoc
// @Summary  Siguiente número de factura sugerido y valores por defecto
// @Tags     invoices
// @Security Bearer
// @Produce  json
// @Success  200  {object}  dto.NextInvoiceResponse
// @Router   /api/invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	next, err := h.uc.NextInvoiceNumber(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(next)
}

// DownloadPDF godoc
// @Summary  Descarga la factura en PDF
// @Tags     invoices
// @Security Bearer
// @Produce  application/pdf
// @Success  200
// @Failure  403  {object}  dto.ErrorResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
