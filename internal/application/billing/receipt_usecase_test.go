package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
)

type staticReceiptGenerator struct{}

func (staticReceiptGenerator) GenerateReceipt(_ context.Context, _ *entity.InvoiceRecord, _ *entity.FiscalLink) ([]byte, error) {
	return []byte("%PDF"), nil
}

func newReceiptFixture(account *entity.Account, records ...*entity.InvoiceRecord) *ReceiptUseCase {
	accounts := &fakeAccountRepo{accounts: map[string]*entity.Account{}}
	if account != nil {
		accounts.accounts[account.ID] = account
	}
	invoices := &fakeInvoiceRepo{records: records}
	return NewReceiptUseCase(invoices, accounts, staticReceiptGenerator{})
}

func TestReceipt(t *testing.T) {
	account := linkedAccount(entity.PlanFree)
	uc := newReceiptFixture(account, stampedRecord("inv-1", account.ID))

	pdf, filename, err := uc.Receipt(context.Background(), account.ID, "inv-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "cfdi-42.pdf", filename)
}

func TestReceipt_Propiedad(t *testing.T) {
	account := linkedAccount(entity.PlanFree)
	uc := newReceiptFixture(account, stampedRecord("inv-1", "acc-ajena"))

	_, _, err := uc.Receipt(context.Background(), account.ID, "inv-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = uc.Receipt(context.Background(), account.ID, "inv-inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceipt_CuentaInexistente(t *testing.T) {
	// El registro existe pero la cuenta ya no: 401, no un 500 con error nil.
	uc := newReceiptFixture(nil, stampedRecord("inv-1", "acc-1"))

	_, _, err := uc.Receipt(context.Background(), "acc-1", "inv-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReceipt_SinVinculoFiscal(t *testing.T) {
	account := &entity.Account{
		ID:        "acc-1",
		Email:     "emisor@synaptica.mx",
		Plan:      entity.PlanFree,
		Role:      entity.RoleStandard,
		CreatedAt: time.Now(),
	}
	uc := newReceiptFixture(account, stampedRecord("inv-1", account.ID))

	_, _, err := uc.Receipt(context.Background(), account.ID, "inv-1")
	assert.ErrorIs(t, err, domain.ErrFiscalLinkMissing)
}
