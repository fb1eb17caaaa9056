package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/domain/repository"
)

var _ repository.InvoiceRecordRepository = (*InvoiceRecordRepo)(nil)

// InvoiceRecordRepo implementación de InvoiceRecordRepository (usable con pool o tx).
type InvoiceRecordRepo struct {
	q Querier
}

// NewInvoiceRecordRepository construye el adaptador.
func NewInvoiceRecordRepository(q Querier) *InvoiceRecordRepo {
	return &InvoiceRecordRepo{q: q}
}

const invoiceColumns = `
	id, account_id, organization_id, uuid, folio, issued_at,
	sello_sat, sello_cfdi, certificate_number, original_chain,
	receiver_rfc, receiver_legal_name, description, quantity, unit_value, total,
	status, created_at, updated_at`

// Create persiste el espejo local de un CFDI timbrado.
func (r *InvoiceRecordRepo) Create(ctx context.Context, rec *entity.InvoiceRecord) error {
	query := `
		INSERT INTO invoice_records (` + invoiceColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.AccountID, rec.OrganizationID, rec.UUID, rec.Folio, rec.IssuedAt,
		rec.SelloSAT, rec.SelloCFDI, rec.CertificateNumber, rec.OriginalChain,
		rec.ReceiverRFC, rec.ReceiverLegalName, rec.Description, rec.Quantity, rec.UnitValue, rec.Total,
		rec.Status, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por id de documento (nil si no existe).
func (r *InvoiceRecordRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceRecord, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoice_records WHERE id = $1`
	var rec entity.InvoiceRecord
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.AccountID, &rec.OrganizationID, &rec.UUID, &rec.Folio, &rec.IssuedAt,
		&rec.SelloSAT, &rec.SelloCFDI, &rec.CertificateNumber, &rec.OriginalChain,
		&rec.ReceiverRFC, &rec.ReceiverLegalName, &rec.Description, &rec.Quantity, &rec.UnitValue, &rec.Total,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice record: %w", err)
	}
	return &rec, nil
}

// ListByAccount lista registros de la cuenta, más recientes primero.
func (r *InvoiceRecordRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*entity.InvoiceRecord, error) {
	query := `SELECT` + invoiceColumns + `
		FROM invoice_records WHERE account_id = $1
		ORDER BY issued_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoice records: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceRecord
	for rows.Next() {
		var rec entity.InvoiceRecord
		if err := rows.Scan(
			&rec.ID, &rec.AccountID, &rec.OrganizationID, &rec.UUID, &rec.Folio, &rec.IssuedAt,
			&rec.SelloSAT, &rec.SelloCFDI, &rec.CertificateNumber, &rec.OriginalChain,
			&rec.ReceiverRFC, &rec.ReceiverLegalName, &rec.Description, &rec.Quantity, &rec.UnitValue, &rec.Total,
			&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// CountByAccount cuenta las facturas timbradas (no canceladas) de la cuenta.
func (r *InvoiceRecordRepo) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoice_records WHERE account_id = $1 AND status = $2`,
		accountID, entity.InvoiceStatusStamped,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoice records: %w", err)
	}
	return count, nil
}

// MarkCanceled marca el registro como cancelado ante el SAT.
func (r *InvoiceRecordRepo) MarkCanceled(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoice_records SET status = $2, updated_at = now() WHERE id = $1`,
		id, entity.InvoiceStatusCanceled,
	)
	if err != nil {
		return fmt.Errorf("mark canceled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
