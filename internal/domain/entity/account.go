package entity

import "time"

// Planes de suscripción.
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanPlatinum = "platinum"
)

// Roles válidos para Account.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// Account representa una cuenta de la aplicación (dueña de cero-o-un FiscalLink).
type Account struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Plan         string // free, pro, platinum
	Role         string // standard, admin
	FiscalLink   *FiscalLink

	// Extensión manual de la prueba (la activa soporte/billing, no este core).
	ManualTrialActive bool
	TrialEnds         *time.Time

	// Folios extra comprados fuera de la suscripción.
	ExtraFolios int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid indica si el plan permite timbrar sin límite.
func (a *Account) IsPaid() bool {
	return a.Plan == PlanPro || a.Plan == PlanPlatinum
}

// IsAdmin indica si la cuenta tiene rol privilegiado (sin tope de prueba).
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AgeDays devuelve la edad de la cuenta en días completos, redondeando hacia
// arriba: una cuenta creada hace una hora tiene 1 día.
func (a *Account) AgeDays(now time.Time) int {
	elapsed := now.Sub(a.CreatedAt)
	if elapsed <= 0 {
		return 0
	}
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// InTrialWindow indica si la cuenta sigue dentro de su ventana de prueba.
// La ventana derivada es CreatedAt + trialDays; una extensión manual
// (ManualTrialActive + TrialEnds) la prolonga.
func (a *Account) InTrialWindow(now time.Time, trialDays int) bool {
	if a.ManualTrialActive && a.TrialEnds != nil && now.Before(*a.TrialEnds) {
		return true
	}
	return a.AgeDays(now) <= trialDays
}
