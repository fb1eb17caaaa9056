package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/synaptica/aurea-api/internal/domain/entity"
)

func testAccount(plan, role string, ageDays int, now time.Time) *entity.Account {
	return &entity.Account{
		ID:        "acc-1",
		Email:     "test@synaptica.mx",
		Plan:      plan,
		Role:      role,
		CreatedAt: now.Add(-time.Duration(ageDays) * 24 * time.Hour),
	}
}

func TestQuotaEnforcer_Evaluate(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	quota := QuotaEnforcer{TrialDays: 7, TrialInvoiceLimit: 1}

	tests := []struct {
		name          string
		account       *entity.Account
		priorInvoices int
		wantAllowed   bool
	}{
		{
			name:          "free en prueba sin facturas previas",
			account:       testAccount(entity.PlanFree, entity.RoleStandard, 2, now),
			priorInvoices: 0,
			wantAllowed:   true,
		},
		{
			name:          "free en prueba con el límite alcanzado",
			account:       testAccount(entity.PlanFree, entity.RoleStandard, 2, now),
			priorInvoices: 1,
			wantAllowed:   false,
		},
		{
			name:          "plan pro ignora el límite",
			account:       testAccount(entity.PlanPro, entity.RoleStandard, 2, now),
			priorInvoices: 5,
			wantAllowed:   true,
		},
		{
			name:          "plan platinum ignora el límite",
			account:       testAccount(entity.PlanPlatinum, entity.RoleStandard, 2, now),
			priorInvoices: 50,
			wantAllowed:   true,
		},
		{
			name:          "rol admin ignora el límite aun en plan free",
			account:       testAccount(entity.PlanFree, entity.RoleAdmin, 2, now),
			priorInvoices: 10,
			wantAllowed:   true,
		},
		{
			name:          "free fuera de la ventana de prueba",
			account:       testAccount(entity.PlanFree, entity.RoleStandard, 30, now),
			priorInvoices: 3,
			wantAllowed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quota.Evaluate(tt.account, tt.priorInvoices, now)
			assert.Equal(t, tt.wantAllowed, got.Allowed)
			if !tt.wantAllowed {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestQuotaEnforcer_ExtraFolios(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	quota := QuotaEnforcer{TrialDays: 7, TrialInvoiceLimit: 1}

	account := testAccount(entity.PlanFree, entity.RoleStandard, 2, now)
	account.ExtraFolios = 2

	// Límite efectivo = 1 + 2 folios extra.
	assert.True(t, quota.Evaluate(account, 2, now).Allowed)
	assert.False(t, quota.Evaluate(account, 3, now).Allowed)
}

func TestQuotaEnforcer_ManualTrialExtension(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	quota := QuotaEnforcer{TrialDays: 7, TrialInvoiceLimit: 1}

	// Cuenta de 30 días pero con extensión manual vigente: sigue en prueba y
	// por tanto sujeta al límite.
	ends := now.Add(48 * time.Hour)
	account := testAccount(entity.PlanFree, entity.RoleStandard, 30, now)
	account.ManualTrialActive = true
	account.TrialEnds = &ends

	assert.False(t, quota.Evaluate(account, 1, now).Allowed)
	assert.True(t, quota.Evaluate(account, 0, now).Allowed)
}

func TestAccount_AgeDays(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	// Redondeo hacia arriba: una hora de vida ya cuenta como 1 día.
	fresh := &entity.Account{CreatedAt: now.Add(-time.Hour)}
	assert.Equal(t, 1, fresh.AgeDays(now))

	exact := &entity.Account{CreatedAt: now.Add(-48 * time.Hour)}
	assert.Equal(t, 2, exact.AgeDays(now))

	future := &entity.Account{CreatedAt: now.Add(time.Hour)}
	assert.Equal(t, 0, future.AgeDays(now))
}
