package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/application/fiscal"
)

// FiscalHandler maneja el alta fiscal de la cuenta (protegido).
type FiscalHandler struct {
	uc *fiscal.LinkOrganizationUseCase
}

// NewFiscalHandler construye el handler.
func NewFiscalHandler(uc *fiscal.LinkOrganizationUseCase) *FiscalHandler {
	return &FiscalHandler{uc: uc}
}

// LinkOrganization vincula la cuenta con su Organization en el PAC.
// POST /api/fiscal/organization (multipart/form-data)
func (h *FiscalHandler) LinkOrganization(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}

	in := dto.LinkOrganizationRequest{
		LegalName: c.FormValue("legal_name"),
		Name:      c.FormValue("name"),
		TaxID:     c.FormValue("tax_id"),
		TaxSystem: c.FormValue("tax_system"),
		ZipCode:   c.FormValue("address[zip]"),
		Password:  c.FormValue("password"),
	}
	if in.ZipCode == "" {
		in.ZipCode = c.FormValue("zip")
	}
	in.Certificate = readFormFile(c, "certificate")
	in.Key = readFormFile(c, "key")
	in.Logo = readFormFile(c, "logo")

	res, err := h.uc.Link(c.Context(), accountID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// readFormFile lee un archivo del multipart; devuelve nil si no viene.
func readFormFile(c *fiber.Ctx, name string) []byte {
	fh, err := c.FormFile(name)
	if err != nil || fh == nil {
		return nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil
	}
	return data
}
