package billing

import (
	"time"

	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
)

// Decision resultado de evaluar la cuota de timbrado.
type Decision struct {
	Allowed bool
	Reason  string // mensaje mostrable al usuario cuando Allowed es false
}

// QuotaEnforcer decide si una cuenta puede timbrar, a partir de su plan, rol,
// edad y facturas previas. Es de solo lectura: nunca muta estado, de modo que
// evaluarla bajo reintento es seguro.
//
// El tope de prueba es best-effort: el conteo previo y la persistencia de la
// factura resultante no son atómicos, así que dos timbrados simultáneos de la
// misma cuenta pueden exceder el límite. Se trata como límite suave de UX, no
// como invariante dura.
type QuotaEnforcer struct {
	TrialDays         int // ventana de prueba en días
	TrialInvoiceLimit int // facturas permitidas dentro de la ventana (plan free)
}

// Evaluate aplica las reglas en orden:
//  1. Plan de pago (pro/platinum): permitido sin condiciones.
//  2. Rol admin: permitido sin condiciones.
//  3. Fuera de la ventana de prueba: permitido (los cobros del plan se
//     verifican en el flujo de suscripción, no aquí).
//  4. Dentro de la ventana: permitido mientras las facturas previas no
//     alcancen el límite más los folios extra comprados.
func (q QuotaEnforcer) Evaluate(account *entity.Account, priorInvoices int, now time.Time) Decision {
	if account.IsPaid() {
		return Decision{Allowed: true}
	}
	if account.IsAdmin() {
		return Decision{Allowed: true}
	}
	if !account.InTrialWindow(now, q.TrialDays) {
		return Decision{Allowed: true}
	}
	if priorInvoices < q.TrialInvoiceLimit+account.ExtraFolios {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, Reason: domain.ErrQuotaExceeded.Error()}
}
