package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/synaptica/aurea-api/internal/application/billing"
	"github.com/synaptica/aurea-api/internal/application/dto"
)

// InvoiceHandler maneja timbrado, consulta, descarga y cancelación de CFDI (protegido).
type InvoiceHandler struct {
	stamp   *billing.StampInvoiceUseCase
	queries *billing.InvoiceQueryUseCase
	receipt *billing.ReceiptUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(stamp *billing.StampInvoiceUseCase, queries *billing.InvoiceQueryUseCase, receipt *billing.ReceiptUseCase) *InvoiceHandler {
	return &InvoiceHandler{stamp: stamp, queries: queries, receipt: receipt}
}

// Stamp timbra un CFDI.
// POST /api/invoices/stamp
func (h *InvoiceHandler) Stamp(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StampInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.stamp.Stamp(c.Context(), accountID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Cancel cancela un CFDI ante el SAT.
// POST /api/invoices/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CancelInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.queries.Cancel(c.Context(), accountID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// List lista los CFDI timbrados de la cuenta.
// GET /api/invoices?limit=20&offset=0
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.queries.List(c.Context(), accountID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID consulta un CFDI en el PAC.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	inv, err := h.queries.Get(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// DownloadPDF descarga la representación impresa generada por el PAC.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	data, err := h.queries.DownloadPDF(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

// DownloadXML descarga el XML timbrado.
// GET /api/invoices/:id/xml
func (h *InvoiceHandler) DownloadXML(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	data, err := h.queries.DownloadXML(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	return c.Send(data)
}

// Receipt genera la representación impresa local (plantilla propia).
// GET /api/invoices/:id/receipt
func (h *InvoiceHandler) Receipt(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	data, filename, err := h.receipt.Receipt(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
