package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StampInvoiceRequest body para POST /api/invoices/stamp.
// Una sola línea de concepto por petición; los códigos de producto/unidad SAT
// los aporta el cliente (no se resuelven aquí).
type StampInvoiceRequest struct {
	Client        string          `json:"client"`    // razón social del receptor
	RFC           string          `json:"rfc"`       // RFC del receptor
	FiscalRegime  string          `json:"fiscalRegime"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitValue     decimal.Decimal `json:"unitValue"`
	SATProductKey string          `json:"satProductKey"`
	SATUnitKey    string          `json:"satUnitKey"`
	PaymentForm   string          `json:"paymentForm"`
	PaymentMethod string          `json:"paymentMethod"`
	CFDIUse       string          `json:"cfdiUse"`
	IVA           bool            `json:"iva"`       // true -> incluir IVA 16%
	Retention     bool            `json:"retention"` // true -> incluir retención ISR 1.25%
}

// StampedInvoiceResponse forma canónica del CFDI timbrado.
type StampedInvoiceResponse struct {
	ID                string          `json:"id"`
	UUID              string          `json:"uuid"`
	Folio             string          `json:"folio"`
	Date              time.Time       `json:"date"`
	SelloSAT          string          `json:"selloSAT"`
	SelloCFDI         string          `json:"selloCFDI"`
	CertificateNumber string          `json:"certificateNumber"`
	OriginalChain     string          `json:"originalChain"`
	XMLURL            string          `json:"xml,omitempty"`
	Total             decimal.Decimal `json:"total"`
}

// CancelInvoiceRequest body para POST /api/invoices/cancel.
// Reason es el motivo SAT; por defecto "02" (comprobante emitido con errores
// sin relación).
type CancelInvoiceRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// InvoiceListItem factura timbrada en listados de la cuenta.
type InvoiceListItem struct {
	ID       string          `json:"id"`
	UUID     string          `json:"uuid"`
	Folio    string          `json:"folio"`
	Date     time.Time       `json:"date"`
	Receiver string          `json:"receiver"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"status"`
}

// CreateCustomerRequest body para POST /api/customers (passthrough al PAC).
type CreateCustomerRequest struct {
	LegalName string `json:"legal_name"`
	TaxID     string `json:"tax_id"`
	TaxSystem string `json:"tax_system"`
	Email     string `json:"email,omitempty"`
	ZipCode   string `json:"zip,omitempty"`
}
