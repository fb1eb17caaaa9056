package facturapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Organizations ─────────────────────────────────────────────────────────────

// Organization identidad fiscal del emisor registrada en el PAC.
type Organization struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Legal     LegalInfo `json:"legal"`
}

// LegalInfo datos legales de la Organization. Name es el nombre comercial,
// distinto de la razón social.
type LegalInfo struct {
	Name      string  `json:"name,omitempty"`
	LegalName string  `json:"legal_name"`
	TaxID     string  `json:"tax_id"`
	TaxSystem string  `json:"tax_system"`
	Address   Address `json:"address"`
}

// Address domicilio fiscal (solo se exige el código postal).
type Address struct {
	Zip string `json:"zip"`
}

// OrganizationCreate payload de POST /organizations.
type OrganizationCreate struct {
	Name      string  `json:"name,omitempty"`
	LegalName string  `json:"legal_name"`
	TaxID     string  `json:"tax_id"`
	TaxSystem string  `json:"tax_system"`
	Address   Address `json:"address"`
}

// ── Customers ─────────────────────────────────────────────────────────────────

// Customer receptor de facturas registrado en el PAC.
type Customer struct {
	ID        string  `json:"id"`
	LegalName string  `json:"legal_name"`
	TaxID     string  `json:"tax_id"`
	TaxSystem string  `json:"tax_system"`
	Email     string  `json:"email"`
	Address   Address `json:"address"`
}

// CustomerCreate payload de POST /customers.
type CustomerCreate struct {
	LegalName string  `json:"legal_name"`
	TaxID     string  `json:"tax_id"`
	TaxSystem string  `json:"tax_system"`
	Email     string  `json:"email,omitempty"`
	Address   Address `json:"address"`
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// Tax impuesto aplicado a un concepto. Para retenciones (ISR) Withholding es
// true y FactorType "Tasa".
type Tax struct {
	Type        string          `json:"type"` // IVA, ISR
	Rate        decimal.Decimal `json:"rate"`
	FactorType  string          `json:"factor,omitempty"` // Tasa, Cuota, Exento
	Withholding bool            `json:"withholding,omitempty"`
}

// Product concepto de la línea de factura, con claves SAT.
type Product struct {
	Description string          `json:"description"`
	ProductKey  string          `json:"product_key"` // clave producto/servicio SAT
	UnitKey     string          `json:"unit_key"`    // clave de unidad SAT
	Price       decimal.Decimal `json:"price"`
	Taxes       []Tax           `json:"taxes"`
}

// Item línea de factura (una sola por petición en este diseño).
type Item struct {
	Quantity decimal.Decimal `json:"quantity"`
	Product  Product         `json:"product"`
}

// InvoiceCreate payload de POST /invoices. Organization marca al emisor
// (la Organization del FiscalLink de la cuenta).
type InvoiceCreate struct {
	Organization  string `json:"organization"`
	Customer      string `json:"customer"` // id del receptor ya resuelto
	Items         []Item `json:"items"`
	PaymentForm   string `json:"payment_form"`
	PaymentMethod string `json:"payment_method"`
	Use           string `json:"use"` // uso CFDI
}

// Stamp sellos digitales devueltos por el SAT al timbrar.
type Stamp struct {
	Date          time.Time `json:"date"`
	Signature     string    `json:"signature"`       // sello CFDI del emisor
	SatSignature  string    `json:"sat_signature"`   // sello del SAT
	SatCertNumber string    `json:"sat_cert_number"` // número de certificado SAT
}

// Invoice CFDI devuelto por el PAC (timbrado o consultado).
type Invoice struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	Status          string          `json:"status"`
	UUID            string          `json:"uuid"`
	FolioNumber     string          `json:"folio_number"`
	Total           decimal.Decimal `json:"total"`
	VerificationURL string          `json:"verification_url"`
	Stamp           Stamp           `json:"stamp"`
}

// CancelResult confirmación de cancelación ante el SAT.
type CancelResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	CancelReason string `json:"cancellation_reason"`
}

// CatalogProduct entrada del catálogo de productos/servicios SAT.
type CatalogProduct struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// listResponse envoltura de paginación del PAC.
type listResponse[T any] struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Data       []T `json:"data"`
}
