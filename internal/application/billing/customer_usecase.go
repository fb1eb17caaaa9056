package billing

import (
	"context"
	"fmt"

	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	"github.com/synaptica/aurea-api/pkg/cfdi"
)

// CustomerUseCase passthrough de receptores hacia el PAC (alta y consulta
// directas, fuera del flujo de timbrado).
type CustomerUseCase struct {
	pac CustomerPAC
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(pac CustomerPAC) *CustomerUseCase {
	return &CustomerUseCase{pac: pac}
}

// Create registra un receptor en el PAC.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*facturapi.Customer, error) {
	if in.LegalName == "" || in.TaxID == "" {
		return nil, fmt.Errorf("%w: legal_name y tax_id son requeridos", domain.ErrInvalidInput)
	}
	zip := in.ZipCode
	if zip == "" {
		zip = defaultCustomerZip
	}
	return uc.pac.CreateCustomer(ctx, facturapi.CustomerCreate{
		LegalName: cfdi.NormalizeLegalName(in.LegalName),
		TaxID:     cfdi.NormalizeRFC(in.TaxID),
		TaxSystem: in.TaxSystem,
		Email:     in.Email,
		Address:   facturapi.Address{Zip: zip},
	})
}

// GetByTaxID consulta un receptor por RFC.
func (uc *CustomerUseCase) GetByTaxID(ctx context.Context, rfc string) (*facturapi.Customer, error) {
	rfc = cfdi.NormalizeRFC(rfc)
	if rfc == "" {
		return nil, fmt.Errorf("%w: rfc requerido", domain.ErrInvalidInput)
	}
	found, err := uc.pac.SearchCustomerByTaxID(ctx, rfc)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}
