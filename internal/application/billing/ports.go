package billing

import (
	"context"

	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
)

// InvoicePAC operaciones de timbrado y consulta de CFDI en el PAC.
type InvoicePAC interface {
	CreateInvoice(ctx context.Context, in facturapi.InvoiceCreate) (*facturapi.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*facturapi.Invoice, error)
	CancelInvoice(ctx context.Context, id, reason string) (*facturapi.CancelResult, error)
	DownloadInvoicePDF(ctx context.Context, id string) ([]byte, error)
	DownloadInvoiceXML(ctx context.Context, id string) ([]byte, error)
}

// CustomerPAC operaciones sobre receptores en el PAC.
type CustomerPAC interface {
	SearchCustomerByTaxID(ctx context.Context, rfc string) (*facturapi.Customer, error)
	CreateCustomer(ctx context.Context, in facturapi.CustomerCreate) (*facturapi.Customer, error)
}

// CatalogPAC consulta de catálogos de referencia SAT.
type CatalogPAC interface {
	SearchProducts(ctx context.Context, q string) ([]facturapi.CatalogProduct, error)
}

// ReceiptGenerator genera la representación impresa local de un CFDI timbrado.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, record *entity.InvoiceRecord, issuer *entity.FiscalLink) ([]byte, error)
}
