package billing

import (
	"context"
	"fmt"

	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
)

// CatalogUseCase passthrough de catálogos SAT (claves de producto/servicio).
type CatalogUseCase struct {
	pac CatalogPAC
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(pac CatalogPAC) *CatalogUseCase {
	return &CatalogUseCase{pac: pac}
}

// SearchProducts busca claves de producto/servicio por texto libre.
func (uc *CatalogUseCase) SearchProducts(ctx context.Context, q string) ([]facturapi.CatalogProduct, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: parámetro q requerido", domain.ErrInvalidInput)
	}
	return uc.pac.SearchProducts(ctx, q)
}
