package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invoicething/internal/application/billing"
)

// FileHandler URLs de subida y lectura de recibos.
type FileHandler struct {
	uc *billing.AttachmentUseCase
}

func NewFileHandler(uc *billing.AttachmentUseCase) *FileHandler {
	return &FileHandler{uc: uc}
}

// UploadURL godoc
// @Summary      Genera una URL de subida
// @Description  Devuelve el storage_id a guardar como attachment_id del gasto.
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UploadURLResponse
// @Router       /api/files/upload-url [post]
func (h *FileHandler) UploadURL(c *fiber.Ctx) error {
	out, err := h.uc.GenerateUploadURL(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// URL GET /api/files/url?id=  (url null si el archivo no existe)
func (h *FileHandler) URL(c *fiber.Ctx) error {
	out, err := h.uc.GetURL(c.Context(), GetUserID(c), c.Query("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/files?id=
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Query("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
