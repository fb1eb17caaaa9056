package billing

import (
	"context"
	"fmt"

	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	"github.com/synaptica/aurea-api/pkg/cfdi"
	"github.com/synaptica/aurea-api/pkg/logger"
)

// Valores por defecto para receptores creados just-in-time durante el timbrado.
const (
	defaultCustomerEmail = "facturas@synaptica.mx"
	defaultCustomerZip   = "01000"
)

// CustomerResolver localiza o registra al receptor de la factura en el PAC.
// Busca primero por RFC y crea solo si no existe, de modo que resolver al
// mismo receptor dos veces no duplica registros.
type CustomerResolver struct {
	pac CustomerPAC
	log *logger.Logger
}

// NewCustomerResolver construye el resolver.
func NewCustomerResolver(pac CustomerPAC, log *logger.Logger) *CustomerResolver {
	return &CustomerResolver{pac: pac, log: log}
}

// Resolve devuelve el id del receptor en el PAC para el RFC dado.
// Flujo: búsqueda por RFC → alta si no existe → re-búsqueda si el alta choca
// con un registro creado en paralelo. Si ningún camino produce un id, retorna
// ErrRecipientResolution.
func (r *CustomerResolver) Resolve(ctx context.Context, rfc, legalName, taxRegime string) (string, error) {
	rfc = cfdi.NormalizeRFC(rfc)
	if rfc == "" {
		return "", fmt.Errorf("%w: rfc del receptor requerido", domain.ErrInvalidInput)
	}

	found, err := r.pac.SearchCustomerByTaxID(ctx, rfc)
	if err == nil && found != nil {
		return found.ID, nil
	}
	if err != nil {
		// La búsqueda es best-effort: si falla se intenta el alta directa.
		r.log.Warn().Err(err).Str("rfc", rfc).Msg("búsqueda de receptor falló, intentando alta")
	}

	created, createErr := r.pac.CreateCustomer(ctx, facturapi.CustomerCreate{
		LegalName: cfdi.NormalizeLegalName(legalName),
		TaxID:     rfc,
		TaxSystem: taxRegime,
		Email:     defaultCustomerEmail,
		Address:   facturapi.Address{Zip: defaultCustomerZip},
	})
	if createErr == nil && created != nil {
		return created.ID, nil
	}

	// El alta pudo chocar con un receptor creado por otra petición; una última
	// búsqueda resuelve ese caso.
	found, err = r.pac.SearchCustomerByTaxID(ctx, rfc)
	if err == nil && found != nil {
		return found.ID, nil
	}

	r.log.Error().Err(createErr).Str("rfc", rfc).Msg("no se pudo resolver al receptor")
	return "", fmt.Errorf("%w: %v", domain.ErrRecipientResolution, createErr)
}
