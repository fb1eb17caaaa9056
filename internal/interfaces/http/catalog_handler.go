package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/synaptica/aurea-api/internal/application/billing"
	"github.com/synaptica/aurea-api/internal/application/dto"
)

// CatalogHandler passthrough de catálogos SAT (protegido).
type CatalogHandler struct {
	uc *billing.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *billing.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// SearchProducts GET /api/catalogs/products?q=
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	products, err := h.uc.SearchProducts(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}
