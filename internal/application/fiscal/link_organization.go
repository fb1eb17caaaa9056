package fiscal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/domain/repository"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	"github.com/synaptica/aurea-api/pkg/cfdi"
	"github.com/synaptica/aurea-api/pkg/logger"
)

// OrganizationPAC operaciones sobre Organizations (emisores) en el PAC.
type OrganizationPAC interface {
	SearchOrganizationByTaxID(ctx context.Context, rfc string) (*facturapi.Organization, error)
	CreateOrganization(ctx context.Context, in facturapi.OrganizationCreate) (*facturapi.Organization, error)
	UploadCertificate(ctx context.Context, organizationID string, certificate, key []byte, password string) error
	UploadLogo(ctx context.Context, organizationID string, logo []byte) error
}

// LinkOrganizationUseCase vincula la cuenta con su Organization en el PAC
// (una por cuenta). Orden de efectos: la Organization remota se encuentra o
// crea PRIMERO y solo después se persiste el vínculo local; si la persistencia
// falla, reintentar es idempotente porque la búsqueda por RFC la reencuentra.
//
// Las subidas de CSD y logo son no fatales: sus fallos se acumulan como
// advertencias en la respuesta exitosa.
type LinkOrganizationUseCase struct {
	accountRepo repository.AccountRepository
	pac         OrganizationPAC
	defaultLogo []byte // logo por defecto si el usuario no sube uno; puede ser nil
	log         *logger.Logger
}

// NewLinkOrganizationUseCase construye el caso de uso.
func NewLinkOrganizationUseCase(
	accountRepo repository.AccountRepository,
	pac OrganizationPAC,
	defaultLogo []byte,
	log *logger.Logger,
) *LinkOrganizationUseCase {
	return &LinkOrganizationUseCase{
		accountRepo: accountRepo,
		pac:         pac,
		defaultLogo: defaultLogo,
		log:         log,
	}
}

// Link realiza el alta fiscal de la cuenta.
func (uc *LinkOrganizationUseCase) Link(ctx context.Context, accountID string, in dto.LinkOrganizationRequest) (*dto.FiscalLinkResponse, error) {
	if in.LegalName == "" {
		return nil, fmt.Errorf("%w: legal_name requerido", domain.ErrInvalidInput)
	}
	if in.TaxID == "" {
		return nil, fmt.Errorf("%w: tax_id requerido", domain.ErrInvalidInput)
	}

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("link: obtener cuenta: %w", err)
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}

	rfc := cfdi.NormalizeRFC(in.TaxID)
	legalName := cfdi.NormalizeLegalName(in.LegalName)

	// Buscar antes de crear: el mismo RFC nunca produce dos Organizations.
	org, err := uc.pac.SearchOrganizationByTaxID(ctx, rfc)
	if err != nil {
		return nil, err
	}
	if org == nil {
		// Nombre comercial: si no viene, la razón social hace ambos papeles.
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = legalName
		}
		org, err = uc.pac.CreateOrganization(ctx, facturapi.OrganizationCreate{
			Name:      name,
			LegalName: legalName,
			TaxID:     rfc,
			TaxSystem: in.TaxSystem,
			Address:   facturapi.Address{Zip: in.ZipCode},
		})
		if err != nil {
			return nil, err
		}
	} else if org.Legal.LegalName != "" {
		// Reutilizar la razón social ya registrada en el PAC.
		legalName = org.Legal.LegalName
	}

	link := &entity.FiscalLink{
		OrganizationID: org.ID,
		RFC:            rfc,
		LegalName:      legalName,
		Ready:          true,
		LinkedAt:       time.Now(),
	}
	if err := uc.accountRepo.SaveFiscalLink(ctx, accountID, link); err != nil {
		// La Organization ya existe remotamente; este fallo es recuperable con
		// un reintento del alta fiscal.
		uc.log.Error().Err(err).Str("account_id", accountID).Str("organization_id", org.ID).
			Msg("organización creada pero vínculo local no persistido")
		return nil, fmt.Errorf("%w: %v", domain.ErrLinkPersistence, err)
	}

	warnings := uc.uploadMaterials(ctx, org.ID, in)

	return &dto.FiscalLinkResponse{
		OrganizationID: org.ID,
		LegalName:      legalName,
		RFC:            rfc,
		Ready:          true,
		Message:        "organización fiscal vinculada",
		Warnings:       warnings,
	}, nil
}

// uploadMaterials sube CSD y logo de forma no fatal y devuelve las advertencias
// acumuladas.
func (uc *LinkOrganizationUseCase) uploadMaterials(ctx context.Context, organizationID string, in dto.LinkOrganizationRequest) []string {
	var warnings []string

	if len(in.Certificate) > 0 && len(in.Key) > 0 && in.Password != "" {
		if err := uc.pac.UploadCertificate(ctx, organizationID, in.Certificate, in.Key, in.Password); err != nil {
			uc.log.Warn().Err(err).Str("organization_id", organizationID).Msg("subida de CSD falló")
			warnings = append(warnings, "el certificado de sello digital no pudo subirse; podrás cargarlo después")
		}
	}

	logo := in.Logo
	if len(logo) == 0 {
		logo = uc.defaultLogo
	}
	if len(logo) > 0 {
		if err := uc.pac.UploadLogo(ctx, organizationID, logo); err != nil {
			uc.log.Warn().Err(err).Str("organization_id", organizationID).Msg("subida de logo falló")
			warnings = append(warnings, "el logo no pudo subirse; podrás cargarlo después")
		}
	}

	return warnings
}
