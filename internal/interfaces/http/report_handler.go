package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/application/reports"
	"github.com/wayra/taller-api/internal/domain"
)

// ReportHandler maneja reportes contables y el libro de movimientos.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetReport reporte agregado de una entidad contable.
// GET /api/reportes/:entidad?tipo=&año=&periodo=
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GetReport(c.Context(), c.Params("entidad"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo o período inválido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entidad contable desconocida"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetComparative comparación año contra año de una entidad.
// GET /api/reportes/:entidad/comparativo?año1=&año2=
func (h *ReportHandler) GetComparative(c *fiber.Ctx) error {
	var in dto.ComparativeRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GetComparative(c.Context(), c.Params("entidad"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "años inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entidad contable desconocida"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// RegisterMovement registra un movimiento contable manual.
// POST /api/contabilidad/movimientos
func (h *ReportHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateAccountingMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entidad, tipo, concepto y monto positivo son requeridos"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListMovements lista el libro de una entidad por año.
// GET /api/contabilidad/movimientos?entidad=&año=&limit=&offset=
func (h *ReportHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	year := c.QueryInt("año")
	list, err := h.uc.ListMovements(c.Context(), c.Query("entidad"), year, page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "año inválido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entidad contable desconocida"})
		}
		return internalError(c, err)
	}
	return c.JSON(list)
}
