package billing

import (
	"context"
	"fmt"

	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/domain/repository"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	"github.com/synaptica/aurea-api/pkg/logger"
)

// Motivo SAT por defecto al cancelar: "02" comprobante emitido con errores sin
// relación.
const defaultCancelReason = "02"

// InvoiceQueryUseCase consulta, descarga y cancela CFDI ya timbrados.
// La propiedad se verifica contra el registro local antes de tocar el PAC.
type InvoiceQueryUseCase struct {
	invoiceRepo repository.InvoiceRecordRepository
	pac         InvoicePAC
	log         *logger.Logger
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(invoiceRepo repository.InvoiceRecordRepository, pac InvoicePAC, log *logger.Logger) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoiceRepo: invoiceRepo, pac: pac, log: log}
}

// owned devuelve el registro local si existe y pertenece a la cuenta.
// 404 si nunca se timbró aquí; 403 si pertenece a otra cuenta.
func (uc *InvoiceQueryUseCase) owned(ctx context.Context, accountID, invoiceID string) (*entity.InvoiceRecord, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: id de factura requerido", domain.ErrInvalidInput)
	}
	record, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("consultar factura local: %w", err)
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	if record.AccountID != accountID {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// Get consulta el documento en el PAC (passthrough).
func (uc *InvoiceQueryUseCase) Get(ctx context.Context, accountID, invoiceID string) (*facturapi.Invoice, error) {
	if _, err := uc.owned(ctx, accountID, invoiceID); err != nil {
		return nil, err
	}
	return uc.pac.GetInvoice(ctx, invoiceID)
}

// DownloadPDF descarga la representación impresa generada por el PAC.
func (uc *InvoiceQueryUseCase) DownloadPDF(ctx context.Context, accountID, invoiceID string) ([]byte, error) {
	if _, err := uc.owned(ctx, accountID, invoiceID); err != nil {
		return nil, err
	}
	return uc.pac.DownloadInvoicePDF(ctx, invoiceID)
}

// DownloadXML descarga el XML timbrado.
func (uc *InvoiceQueryUseCase) DownloadXML(ctx context.Context, accountID, invoiceID string) ([]byte, error) {
	if _, err := uc.owned(ctx, accountID, invoiceID); err != nil {
		return nil, err
	}
	return uc.pac.DownloadInvoiceXML(ctx, invoiceID)
}

// Cancel cancela el CFDI ante el SAT y marca el registro local. Si el motivo
// viene vacío se usa "02".
func (uc *InvoiceQueryUseCase) Cancel(ctx context.Context, accountID string, in dto.CancelInvoiceRequest) (*facturapi.CancelResult, error) {
	if _, err := uc.owned(ctx, accountID, in.ID); err != nil {
		return nil, err
	}
	reason := in.Reason
	if reason == "" {
		reason = defaultCancelReason
	}
	res, err := uc.pac.CancelInvoice(ctx, in.ID, reason)
	if err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.MarkCanceled(ctx, in.ID); err != nil {
		// El SAT ya aceptó la cancelación; el estado local se reporta y queda
		// eventual.
		uc.log.Error().Err(err).Str("invoice_id", in.ID).Msg("cancelada en SAT pero no marcada localmente")
	}
	return res, nil
}

// List lista las facturas timbradas por la cuenta (registros locales).
func (uc *InvoiceQueryUseCase) List(ctx context.Context, accountID string, page dto.PageRequest) ([]dto.InvoiceListItem, error) {
	page.DefaultPage()
	records, err := uc.invoiceRepo.ListByAccount(ctx, accountID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceListItem, 0, len(records))
	for _, r := range records {
		out = append(out, dto.InvoiceListItem{
			ID:       r.ID,
			UUID:     r.UUID,
			Folio:    r.Folio,
			Date:     r.IssuedAt,
			Receiver: r.ReceiverLegalName,
			Total:    r.Total,
			Status:   r.Status,
		})
	}
	return out, nil
}
