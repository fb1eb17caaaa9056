package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP. Los errores del PAC
// (UpstreamError) conservan su status y mensaje originales; todo lo demás cae
// en los sentinels de dominio o en un 500 genérico con el mensaje del error.
func respondError(c *fiber.Ctx, err error) error {
	if ue, ok := domain.IsUpstream(err); ok {
		status := ue.StatusCode
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		msg := ue.Message
		if msg == "" {
			msg = "el proveedor de timbrado rechazó la operación"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: msg})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrFiscalLinkMissing):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FISCAL_SETUP_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrQuotaExceeded):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "QUOTA_EXCEEDED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrLinkPersistence):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LINK_PERSISTENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrRecipientResolution):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RECIPIENT_RESOLUTION", Message: domain.ErrRecipientResolution.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
