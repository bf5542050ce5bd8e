package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/application/settings"
	"github.com/wayra/taller-api/internal/domain"
)

// SettingsHandler maneja la configuración comercial (solo administradores).
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler de configuración.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get devuelve la configuración vigente.
// GET /api/configuracion
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSettings(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetOne devuelve el valor de una clave de configuración.
// GET /api/configuracion/:clave
func (h *SettingsHandler) GetOne(c *fiber.Ctx) error {
	out, err := h.uc.GetSetting(c.Context(), c.Params("clave"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clave no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Update guarda claves de configuración y recalcula los precios de los
// productos afectados por tasa, márgenes o descuentos.
// PATCH /api/configuracion
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateSettings(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "clave desconocida o valor no numérico"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
