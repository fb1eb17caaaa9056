package repository

import (
	"context"

	"github.com/synaptica/aurea-api/internal/domain/entity"
)

// InvoiceRecordRepository define el puerto de persistencia para los CFDI
// timbrados (espejo local del documento del PAC).
type InvoiceRecordRepository interface {
	Create(ctx context.Context, record *entity.InvoiceRecord) error
	GetByID(ctx context.Context, id string) (*entity.InvoiceRecord, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.InvoiceRecord, error)
	// CountByAccount cuenta facturas timbradas de la cuenta. Es la lectura que
	// alimenta el tope de la prueba; no muta estado.
	CountByAccount(ctx context.Context, accountID string) (int, error)
	MarkCanceled(ctx context.Context, id string) error
}
