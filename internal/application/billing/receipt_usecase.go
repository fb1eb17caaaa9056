package billing

import (
	"context"
	"fmt"

	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/repository"
)

// ReceiptUseCase genera la representación impresa local de un CFDI timbrado a
// partir del registro local, sin ir al PAC. Útil cuando el PDF del PAC no es
// accesible o se quiere la plantilla propia de la app.
type ReceiptUseCase struct {
	invoiceRepo repository.InvoiceRecordRepository
	accountRepo repository.AccountRepository
	generator   ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	invoiceRepo repository.InvoiceRecordRepository,
	accountRepo repository.AccountRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{invoiceRepo: invoiceRepo, accountRepo: accountRepo, generator: generator}
}

// Receipt genera el PDF local de la factura. Retorna los bytes y el nombre de
// archivo sugerido.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, accountID, invoiceID string) ([]byte, string, error) {
	record, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener factura: %w", err)
	}
	if record == nil {
		return nil, "", domain.ErrNotFound
	}
	if record.AccountID != accountID {
		return nil, "", domain.ErrForbidden
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener cuenta: %w", err)
	}
	if account == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if account.FiscalLink == nil {
		return nil, "", domain.ErrFiscalLinkMissing
	}

	pdf, err := uc.generator.GenerateReceipt(ctx, record, account.FiscalLink)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("cfdi-%s.pdf", record.Folio)
	return pdf, filename, nil
}
