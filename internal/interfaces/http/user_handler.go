package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/invoicething/internal/application/auth"
	"github.com/jhoicas/invoicething/internal/application/dto"
)

// UserHandler sincronización y lectura del usuario autenticado.
type UserHandler struct {
	uc *auth.AuthUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Sync godoc
// @Summary      Sincroniza el usuario con el proveedor de identidad
// @Description  Crea el usuario en la primera llamada y actualiza email, nombre e imagen después.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SyncUserRequest  false  "Sobrescrituras opcionales"
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/users/sync [post]
func (h *UserHandler) Sync(c *fiber.Ctx) error {
	identity, ok := GetIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.SyncUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	user, err := h.uc.Sync(c.Context(), identity, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// Me godoc
// @Summary  Usuario autenticado
// @Tags     users
// @Security Bearer
// @Produce  json
// @Success  200  {object}  dto.UserResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.GetCurrentUser(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// GetByID GET /api/users/:id (solo el propio usuario).
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetUser(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
