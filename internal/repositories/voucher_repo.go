package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VoucherRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Voucher, error)
	GetByAuthCode(ctx context.Context, tenantID uuid.UUID, authCode string) (*models.Voucher, error)
	ListBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*models.Voucher, error)
	ListByProvider(ctx context.Context, tenantID, providerID uuid.UUID, limit, offset int) ([]*models.Voucher, error)
	ListIssuedOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Voucher, error)
	UpdateStatusCAS(ctx context.Context, tenantID, id uuid.UUID, expected, next string, at time.Time) (bool, error)
}

type voucherRepo struct {
	db Database
}

func NewVoucherRepo(db Database) VoucherRepository {
	return &voucherRepo{db: db}
}

const voucherColumns = `id, tenant_id, auth_code, client_id, provider_id, service_id, sale_item_id, value, status, issued_at, realized_at, invoiced_at, paid_at, created_at, updated_at`

func scanVoucher(row pgx.Row) (*models.Voucher, error) {
	v := &models.Voucher{}
	err := row.Scan(&v.ID, &v.TenantID, &v.AuthCode, &v.ClientID, &v.ProviderID, &v.ServiceID, &v.SaleItemID, &v.Value, &v.Status, &v.IssuedAt, &v.RealizedAt, &v.InvoicedAt, &v.PaidAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *voucherRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE tenant_id = $1 AND id = $2
	`
	return scanVoucher(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *voucherRepo) GetByAuthCode(ctx context.Context, tenantID uuid.UUID, authCode string) (*models.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE tenant_id = $1 AND auth_code = $2
	`
	return scanVoucher(r.db.QueryRow(ctx, query, tenantID, authCode))
}

func (r *voucherRepo) ListBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*models.Voucher, error) {
	query := `
		SELECT v.id, v.tenant_id, v.auth_code, v.client_id, v.provider_id, v.service_id, v.sale_item_id, v.value, v.status, v.issued_at, v.realized_at, v.invoiced_at, v.paid_at, v.created_at, v.updated_at
		FROM vouchers v
		JOIN sale_items si ON si.tenant_id = v.tenant_id AND si.id = v.sale_item_id
		WHERE v.tenant_id = $1 AND si.sale_id = $2
		ORDER BY v.issued_at
	`
	rows, err := r.db.Query(ctx, query, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVouchers(rows)
}

func (r *voucherRepo) ListByProvider(ctx context.Context, tenantID, providerID uuid.UUID, limit, offset int) ([]*models.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE tenant_id = $1 AND provider_id = $2
		ORDER BY issued_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, tenantID, providerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVouchers(rows)
}

// ListIssuedOlderThan scans across tenants; the sweep runs under system
// authority and uses each row's own tenant id for the follow-up CAS.
func (r *voucherRepo) ListIssuedOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE status = $1 AND issued_at < $2
	`
	rows, err := r.db.Query(ctx, query, models.VoucherStatusIssued, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVouchers(rows)
}

// UpdateStatusCAS flips status only if the row still holds the expected
// value, filling the transition's own timestamp column when it has one.
// Returns false when the row changed underneath the caller (or is missing),
// which the service layer reports as a stale transition.
func (r *voucherRepo) UpdateStatusCAS(ctx context.Context, tenantID, id uuid.UUID, expected, next string, at time.Time) (bool, error) {
	stamp := models.VoucherStampField(next)
	var query string
	if stamp != "" {
		query = fmt.Sprintf(`
			UPDATE vouchers
			SET status = $1, %s = $2, updated_at = NOW()
			WHERE tenant_id = $3 AND id = $4 AND status = $5
		`, stamp)
		tag, err := r.db.Exec(ctx, query, next, at, tenantID, id, expected)
		if err != nil {
			return false, err
		}
		return tag.RowsAffected() == 1, nil
	}
	query = `
		UPDATE vouchers
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, next, tenantID, id, expected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func collectVouchers(rows pgx.Rows) ([]*models.Voucher, error) {
	var vouchers []*models.Voucher
	for rows.Next() {
		v := &models.Voucher{}
		if err := rows.Scan(&v.ID, &v.TenantID, &v.AuthCode, &v.ClientID, &v.ProviderID, &v.ServiceID, &v.SaleItemID, &v.Value, &v.Status, &v.IssuedAt, &v.RealizedAt, &v.InvoicedAt, &v.PaidAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}
