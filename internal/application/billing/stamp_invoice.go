package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/domain/repository"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	"github.com/synaptica/aurea-api/pkg/cfdi"
	"github.com/synaptica/aurea-api/pkg/logger"
)

// StampInvoiceUseCase ejecuta el flujo completo de timbrado en una sola pasada:
//
//	vínculo fiscal → cuota → receptor → payload → timbrado PAC → mapeo → registro local
//
// Cualquier paso fallido corta el flujo; no hay reintentos automáticos (el
// usuario reenvía desde la UI). Los objetos remotos ya creados (Organization,
// Customer) no se revierten: el siguiente intento los encuentra y reutiliza.
type StampInvoiceUseCase struct {
	accountRepo repository.AccountRepository
	invoiceRepo repository.InvoiceRecordRepository
	resolver    *CustomerResolver
	pac         InvoicePAC
	quota       QuotaEnforcer
	log         *logger.Logger
}

// NewStampInvoiceUseCase construye el caso de uso.
func NewStampInvoiceUseCase(
	accountRepo repository.AccountRepository,
	invoiceRepo repository.InvoiceRecordRepository,
	resolver *CustomerResolver,
	pac InvoicePAC,
	quota QuotaEnforcer,
	log *logger.Logger,
) *StampInvoiceUseCase {
	return &StampInvoiceUseCase{
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		resolver:    resolver,
		pac:         pac,
		quota:       quota,
		log:         log,
	}
}

// Stamp timbra un CFDI para la cuenta autenticada.
func (uc *StampInvoiceUseCase) Stamp(ctx context.Context, accountID string, in dto.StampInvoiceRequest) (*dto.StampedInvoiceResponse, error) {
	if err := validateStampRequest(in); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("stamp: obtener cuenta: %w", err)
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}

	// Puerta de autorización: sin Organization vinculada no se timbra.
	if account.FiscalLink == nil || !account.FiscalLink.Ready {
		return nil, domain.ErrFiscalLinkMissing
	}

	// Cuota de prueba: lectura pura antes de tocar el PAC.
	prior, err := uc.invoiceRepo.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("stamp: contar facturas previas: %w", err)
	}
	if decision := uc.quota.Evaluate(account, prior, time.Now()); !decision.Allowed {
		return nil, domain.ErrQuotaExceeded
	}

	customerID, err := uc.resolver.Resolve(ctx, in.RFC, in.Client, in.FiscalRegime)
	if err != nil {
		return nil, err
	}

	payload := buildInvoicePayload(account.FiscalLink.OrganizationID, customerID, in)

	inv, err := uc.pac.CreateInvoice(ctx, payload)
	if err != nil {
		return nil, err
	}

	chain := uc.originalChain(ctx, inv)
	record := mapStampedInvoice(accountID, account.FiscalLink.OrganizationID, in, inv, chain)

	// El registro local alimenta la cuota y el listado; si su escritura falla
	// el CFDI ya está timbrado, así que se reporta sin abortar la respuesta.
	if err := uc.invoiceRepo.Create(ctx, record); err != nil {
		uc.log.Error().Err(err).Str("invoice_id", inv.ID).Str("account_id", accountID).
			Msg("CFDI timbrado pero no registrado localmente")
	}

	return &dto.StampedInvoiceResponse{
		ID:                record.ID,
		UUID:              record.UUID,
		Folio:             record.Folio,
		Date:              record.IssuedAt,
		SelloSAT:          record.SelloSAT,
		SelloCFDI:         record.SelloCFDI,
		CertificateNumber: record.CertificateNumber,
		OriginalChain:     record.OriginalChain,
		XMLURL:            inv.VerificationURL,
		Total:             record.Total,
	}, nil
}

func validateStampRequest(in dto.StampInvoiceRequest) error {
	switch {
	case strings.TrimSpace(in.RFC) == "":
		return fmt.Errorf("%w: rfc requerido", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Client) == "":
		return fmt.Errorf("%w: client requerido", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("%w: description requerida", domain.ErrInvalidInput)
	case !in.Quantity.GreaterThan(decimal.Zero):
		return fmt.Errorf("%w: quantity debe ser mayor a cero", domain.ErrInvalidInput)
	case in.UnitValue.LessThan(decimal.Zero):
		return fmt.Errorf("%w: unitValue no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// buildInvoicePayload arma el payload del PAC: exactamente una línea de
// concepto, con impuestos condicionales y la Organization del vínculo fiscal
// marcando al emisor.
func buildInvoicePayload(organizationID, customerID string, in dto.StampInvoiceRequest) facturapi.InvoiceCreate {
	return facturapi.InvoiceCreate{
		Organization: organizationID,
		Customer:     customerID,
		Items: []facturapi.Item{
			{
				Quantity: in.Quantity,
				Product: facturapi.Product{
					Description: in.Description,
					ProductKey:  in.SATProductKey,
					UnitKey:     in.SATUnitKey,
					Price:       in.UnitValue,
					Taxes:       BuildTaxes(in.IVA, in.Retention),
				},
			},
		},
		PaymentForm:   in.PaymentForm,
		PaymentMethod: in.PaymentMethod,
		Use:           in.CFDIUse,
	}
}

// originalChain arma la cadena original del complemento de certificación.
// El timbre completo (incluido RfcProvCertif) solo viaja en el XML timbrado,
// no en la respuesta JSON del PAC, así que se descarga el XML y se parsea el
// TimbreFiscalDigital. Si la descarga o el parseo fallan, se reconstruye una
// cadena parcial desde la respuesta JSON (sin RfcProvCertif) en lugar de
// abortar un timbrado que ya fue aceptado por el SAT.
func (uc *StampInvoiceUseCase) originalChain(ctx context.Context, inv *facturapi.Invoice) string {
	xmlData, err := uc.pac.DownloadInvoiceXML(ctx, inv.ID)
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", inv.ID).
			Msg("descarga del XML timbrado falló; cadena original parcial")
	} else {
		timbre, perr := cfdi.ParseTimbre(xmlData)
		if perr == nil {
			return timbre.CadenaOriginal()
		}
		uc.log.Warn().Err(perr).Str("invoice_id", inv.ID).
			Msg("XML timbrado sin timbre parseable; cadena original parcial")
	}

	partial := cfdi.Timbre{
		UUID:             inv.UUID,
		FechaTimbrado:    stampIssuedAt(inv).Format("2006-01-02T15:04:05"),
		SelloCFD:         inv.Stamp.Signature,
		NoCertificadoSAT: inv.Stamp.SatCertNumber,
	}
	return partial.CadenaOriginal()
}

// stampIssuedAt fecha de emisión efectiva: la del timbre o, si no viene, la de
// creación del documento.
func stampIssuedAt(inv *facturapi.Invoice) time.Time {
	if !inv.Stamp.Date.IsZero() {
		return inv.Stamp.Date
	}
	return inv.CreatedAt
}

// mapStampedInvoice traduce la respuesta del PAC a la forma canónica local.
func mapStampedInvoice(accountID, organizationID string, in dto.StampInvoiceRequest, inv *facturapi.Invoice, chain string) *entity.InvoiceRecord {
	issuedAt := stampIssuedAt(inv)
	now := time.Now()
	return &entity.InvoiceRecord{
		ID:                inv.ID,
		AccountID:         accountID,
		OrganizationID:    organizationID,
		UUID:              inv.UUID,
		Folio:             folioOrFallback(inv),
		IssuedAt:          issuedAt,
		SelloSAT:          inv.Stamp.SatSignature,
		SelloCFDI:         inv.Stamp.Signature,
		CertificateNumber: inv.Stamp.SatCertNumber,
		OriginalChain:     chain,
		ReceiverRFC:       cfdi.NormalizeRFC(in.RFC),
		ReceiverLegalName: cfdi.NormalizeLegalName(in.Client),
		Description:       in.Description,
		Quantity:          in.Quantity,
		UnitValue:         in.UnitValue,
		Total:             inv.Total,
		Status:            entity.InvoiceStatusStamped,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// folioOrFallback devuelve el folio del PAC o, si viene vacío, los primeros
// seis caracteres del id del documento en mayúsculas. Es un folio best-effort,
// no un folio real.
func folioOrFallback(inv *facturapi.Invoice) string {
	if inv.FolioNumber != "" {
		return inv.FolioNumber
	}
	id := inv.ID
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.ToUpper(id)
}
