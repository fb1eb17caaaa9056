package repository

import (
	"context"

	"github.com/synaptica/aurea-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (almacén de identidad).
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	// SaveFiscalLink persiste el vínculo fiscal sobre la cuenta. Sobrescribir un
	// vínculo existente con la misma Organization es un no-op idempotente.
	SaveFiscalLink(ctx context.Context, accountID string, link *entity.FiscalLink) error
	Update(ctx context.Context, account *entity.Account) error
}
