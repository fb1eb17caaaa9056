package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository (usable con pool o tx).
// El FiscalLink vive desnormalizado en columnas de la misma fila: una cuenta
// tiene cero-o-un vínculo y se lee siempre junto con ella.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `
	id, email, password_hash, plan, role,
	manual_trial_active, trial_ends, extra_folios,
	facturapi_org_id, facturapi_rfc, facturapi_legal_name, is_fiscal_ready, fiscal_linked_at,
	created_at, updated_at`

// Create persiste una cuenta nueva.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, plan, role, manual_trial_active, extra_folios, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.Plan, a.Role, a.ManualTrialActive, a.ExtraFolios,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID (nil si no existe).
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// FindByEmail obtiene una cuenta por email (nil si no existe).
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `SELECT` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email))
}

// SaveFiscalLink persiste el vínculo fiscal sobre la cuenta. Escribir el mismo
// vínculo dos veces deja la fila igual (idempotente).
func (r *AccountRepo) SaveFiscalLink(ctx context.Context, accountID string, link *entity.FiscalLink) error {
	query := `
		UPDATE accounts
		SET facturapi_org_id = $2, facturapi_rfc = $3, facturapi_legal_name = $4,
		    is_fiscal_ready = $5, fiscal_linked_at = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		accountID, link.OrganizationID, link.RFC, link.LegalName, link.Ready, link.LinkedAt,
	)
	if err != nil {
		return fmt.Errorf("save fiscal link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update persiste plan, rol y campos de prueba de la cuenta.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts
		SET plan = $2, role = $3, manual_trial_active = $4, trial_ends = $5,
		    extra_folios = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Plan, a.Role, a.ManualTrialActive, a.TrialEnds, a.ExtraFolios,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) scanOne(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	var orgID, rfc, legalName *string
	var ready *bool
	var linkedAt *time.Time

	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Plan, &a.Role,
		&a.ManualTrialActive, &a.TrialEnds, &a.ExtraFolios,
		&orgID, &rfc, &legalName, &ready, &linkedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if orgID != nil && *orgID != "" {
		link := &entity.FiscalLink{
			OrganizationID: *orgID,
		}
		if rfc != nil {
			link.RFC = *rfc
		}
		if legalName != nil {
			link.LegalName = *legalName
		}
		if ready != nil {
			link.Ready = *ready
		}
		if linkedAt != nil {
			link.LinkedAt = *linkedAt
		}
		a.FiscalLink = link
	}
	return &a, nil
}
