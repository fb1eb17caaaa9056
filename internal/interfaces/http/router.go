package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/synaptica/aurea-api/internal/application/auth"
	"github.com/synaptica/aurea-api/internal/application/billing"
	"github.com/synaptica/aurea-api/internal/application/fiscal"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	LinkOrg      *fiscal.LinkOrganizationUseCase
	StampInvoice *billing.StampInvoiceUseCase
	InvoiceQuery *billing.InvoiceQueryUseCase
	Receipt      *billing.ReceiptUseCase
	CustomerUC   *billing.CustomerUseCase
	CatalogUC    *billing.CatalogUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Alta fiscal (protegido)
	fiscalGroup := protected.Group("/fiscal")
	fiscalHandler := NewFiscalHandler(deps.LinkOrg)
	fiscalGroup.Post("/organization", fiscalHandler.LinkOrganization)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.StampInvoice, deps.InvoiceQuery, deps.Receipt)
	invoices.Post("/stamp", invoiceHandler.Stamp)
	invoices.Post("/cancel", invoiceHandler.Cancel)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xml", invoiceHandler.DownloadXML)
	invoices.Get("/:id/receipt", invoiceHandler.Receipt)

	// Customers (protegido, passthrough al PAC)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:rfc", customerHandler.GetByTaxID)

	// Catálogos SAT (protegido, passthrough al PAC)
	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/products", catalogHandler.SearchProducts)
}
