package fiscal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
	"github.com/synaptica/aurea-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
	saveErr  error
}

func (f *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, _ string) (*entity.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) SaveFiscalLink(_ context.Context, accountID string, link *entity.FiscalLink) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return domain.ErrNotFound
	}
	a.FiscalLink = link
	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, a *entity.Account) error {
	f.accounts[a.ID] = a
	return nil
}

// fakeOrgPAC implementa OrganizationPAC con fallos inyectables por operación.
type fakeOrgPAC struct {
	existing *facturapi.Organization // resultado de la búsqueda por RFC

	createCalled bool
	createdOrg   facturapi.OrganizationCreate
	certErr      error
	certUploaded bool
	logoErr      error
	logoUploaded []byte
}

func (f *fakeOrgPAC) SearchOrganizationByTaxID(_ context.Context, _ string) (*facturapi.Organization, error) {
	return f.existing, nil
}

func (f *fakeOrgPAC) CreateOrganization(_ context.Context, in facturapi.OrganizationCreate) (*facturapi.Organization, error) {
	f.createCalled = true
	f.createdOrg = in
	return &facturapi.Organization{
		ID: "org-new",
		Legal: facturapi.LegalInfo{
			LegalName: in.LegalName,
			TaxID:     in.TaxID,
			TaxSystem: in.TaxSystem,
		},
	}, nil
}

func (f *fakeOrgPAC) UploadCertificate(_ context.Context, _ string, _, _ []byte, _ string) error {
	if f.certErr != nil {
		return f.certErr
	}
	f.certUploaded = true
	return nil
}

func (f *fakeOrgPAC) UploadLogo(_ context.Context, _ string, logo []byte) error {
	if f.logoErr != nil {
		return f.logoErr
	}
	f.logoUploaded = logo
	return nil
}

func newLinkFixture(pac *fakeOrgPAC, defaultLogo []byte) (*LinkOrganizationUseCase, *fakeAccountRepo) {
	repo := &fakeAccountRepo{accounts: map[string]*entity.Account{
		"acc-1": {ID: "acc-1", Email: "emisor@synaptica.mx", Plan: entity.PlanFree, Role: entity.RoleStandard},
	}}
	return NewLinkOrganizationUseCase(repo, pac, defaultLogo, testLogger()), repo
}

func validLinkRequest() dto.LinkOrganizationRequest {
	return dto.LinkOrganizationRequest{
		LegalName: "Despacho Gutiérrez, S.A. de C.V.",
		TaxID:     "gut850101aaa",
		TaxSystem: "601",
		ZipCode:   "06600",
	}
}

func TestLink_Validacion(t *testing.T) {
	uc, _ := newLinkFixture(&fakeOrgPAC{}, nil)

	in := validLinkRequest()
	in.LegalName = ""
	_, err := uc.Link(context.Background(), "acc-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validLinkRequest()
	in.TaxID = ""
	_, err = uc.Link(context.Background(), "acc-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLink_CreaOrganizacionNueva(t *testing.T) {
	pac := &fakeOrgPAC{}
	uc, repo := newLinkFixture(pac, nil)

	resp, err := uc.Link(context.Background(), "acc-1", validLinkRequest())

	require.NoError(t, err)
	assert.True(t, pac.createCalled)
	// RFC y razón social normalizados antes de llegar al PAC.
	assert.Equal(t, "GUT850101AAA", pac.createdOrg.TaxID)
	assert.Equal(t, "DESPACHO GUTIERREZ", pac.createdOrg.LegalName)
	// Sin nombre comercial explícito, la razón social hace ambos papeles.
	assert.Equal(t, "DESPACHO GUTIERREZ", pac.createdOrg.Name)

	assert.Equal(t, "org-new", resp.OrganizationID)
	assert.True(t, resp.Ready)
	assert.Empty(t, resp.Warnings)

	// El vínculo quedó persistido sobre la cuenta.
	account := repo.accounts["acc-1"]
	require.NotNil(t, account.FiscalLink)
	assert.Equal(t, "org-new", account.FiscalLink.OrganizationID)
	assert.True(t, account.FiscalLink.Ready)
}

func TestLink_NombreComercial(t *testing.T) {
	pac := &fakeOrgPAC{}
	uc, _ := newLinkFixture(pac, nil)

	in := validLinkRequest()
	in.Name = "Despacho GB"

	_, err := uc.Link(context.Background(), "acc-1", in)

	require.NoError(t, err)
	// El nombre comercial viaja tal cual; solo la razón social se normaliza.
	assert.Equal(t, "Despacho GB", pac.createdOrg.Name)
	assert.Equal(t, "DESPACHO GUTIERREZ", pac.createdOrg.LegalName)
}

func TestLink_ReusaOrganizacionExistente(t *testing.T) {
	pac := &fakeOrgPAC{existing: &facturapi.Organization{
		ID:    "org-found",
		Legal: facturapi.LegalInfo{LegalName: "DESPACHO GUTIERREZ", TaxID: "GUT850101AAA"},
	}}
	uc, _ := newLinkFixture(pac, nil)

	resp, err := uc.Link(context.Background(), "acc-1", validLinkRequest())

	require.NoError(t, err)
	// Mismo RFC nunca produce una segunda Organization.
	assert.False(t, pac.createCalled)
	assert.Equal(t, "org-found", resp.OrganizationID)
	assert.Equal(t, "DESPACHO GUTIERREZ", resp.LegalName)
}

func TestLink_PersistenciaFalla(t *testing.T) {
	pac := &fakeOrgPAC{}
	uc, repo := newLinkFixture(pac, nil)
	repo.saveErr = errors.New("db caída")

	_, err := uc.Link(context.Background(), "acc-1", validLinkRequest())
	assert.ErrorIs(t, err, domain.ErrLinkPersistence)
}

func TestLink_FalloDeCSDNoEsFatal(t *testing.T) {
	pac := &fakeOrgPAC{certErr: errors.New("csd inválido")}
	uc, _ := newLinkFixture(pac, nil)

	in := validLinkRequest()
	in.Certificate = []byte("cer")
	in.Key = []byte("key")
	in.Password = "12345678a"

	resp, err := uc.Link(context.Background(), "acc-1", in)

	// La vinculación sigue siendo exitosa; el fallo viaja como advertencia.
	require.NoError(t, err)
	assert.True(t, resp.Ready)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "certificado")
}

func TestLink_CSDIncompletoNoSeSube(t *testing.T) {
	pac := &fakeOrgPAC{}
	uc, _ := newLinkFixture(pac, nil)

	in := validLinkRequest()
	in.Certificate = []byte("cer") // sin key ni password

	resp, err := uc.Link(context.Background(), "acc-1", in)

	require.NoError(t, err)
	assert.False(t, pac.certUploaded)
	assert.Empty(t, resp.Warnings)
}

func TestLink_LogoPorDefecto(t *testing.T) {
	pac := &fakeOrgPAC{}
	uc, _ := newLinkFixture(pac, []byte("logo-default"))

	_, err := uc.Link(context.Background(), "acc-1", validLinkRequest())

	require.NoError(t, err)
	assert.Equal(t, []byte("logo-default"), pac.logoUploaded)
}

func TestLink_CuentaInexistente(t *testing.T) {
	uc, _ := newLinkFixture(&fakeOrgPAC{}, nil)

	_, err := uc.Link(context.Background(), "acc-missing", validLinkRequest())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
