package repositories

import (
	"context"
	"errors"
	"fmt"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrQuoteNotPending is returned by CreateFromQuote when the quote row was
// no longer pending at commit time, which aborts the whole transaction.
var ErrQuoteNotPending = errors.New("quote is not pending")

type SaleRepository interface {
	CreateWithVouchers(ctx context.Context, sale *models.Sale, vouchers []*models.Voucher) error
	CreateFromQuote(ctx context.Context, quoteID uuid.UUID, sale *models.Sale, vouchers []*models.Voucher) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Sale, error)
	GetItems(ctx context.Context, tenantID, saleID uuid.UUID) ([]*models.SaleItem, error)
	GetItemByID(ctx context.Context, tenantID, itemID uuid.UUID) (*models.SaleItem, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error)
	UpdateStatusCAS(ctx context.Context, tenantID, id uuid.UUID, expected, next string) (bool, error)
}

type saleRepo struct {
	db Database
}

func NewSaleRepo(db Database) SaleRepository {
	return &saleRepo{db: db}
}

const (
	insertSaleSQL = `
		INSERT INTO sales (id, tenant_id, client_id, total, payment_method, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	insertSaleItemSQL = `
		INSERT INTO sale_items (id, tenant_id, sale_id, service_id, provider_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	insertVoucherSQL = `
		INSERT INTO vouchers (id, tenant_id, auth_code, client_id, provider_id, service_id, sale_item_id, value, status, issued_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
)

// CreateWithVouchers commits the sale, its items and one voucher per item as
// a single transaction. A partial sale is never observable.
func (r *saleRepo) CreateWithVouchers(ctx context.Context, sale *models.Sale, vouchers []*models.Voucher) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertSaleTree(ctx, tx, sale, vouchers); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateFromQuote additionally flips the source quote pendente -> aprovado
// inside the same transaction, guarded on the stored status and the validity
// window. If the quote moved or expired first, nothing is created.
func (r *saleRepo) CreateFromQuote(ctx context.Context, quoteID uuid.UUID, sale *models.Sale, vouchers []*models.Voucher) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertSaleTree(ctx, tx, sale, vouchers); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE quotes
		SET status = $1, sale_id = $2, updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4 AND status = $5 AND valid_until > NOW()
	`, models.QuoteStatusApproved, sale.ID, sale.TenantID, quoteID, models.QuoteStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrQuoteNotPending
	}
	return tx.Commit(ctx)
}

func insertSaleTree(ctx context.Context, tx pgx.Tx, sale *models.Sale, vouchers []*models.Voucher) error {
	if _, err := tx.Exec(ctx, insertSaleSQL, sale.ID, sale.TenantID, sale.ClientID, sale.Total, sale.PaymentMethod, sale.Status, sale.Notes); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		if _, err := tx.Exec(ctx, insertSaleItemSQL, item.ID, item.TenantID, item.SaleID, item.ServiceID, item.ProviderID, item.Value); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	for _, v := range vouchers {
		if _, err := tx.Exec(ctx, insertVoucherSQL, v.ID, v.TenantID, v.AuthCode, v.ClientID, v.ProviderID, v.ServiceID, v.SaleItemID, v.Value, v.Status, v.IssuedAt); err != nil {
			return fmt.Errorf("insert voucher: %w", err)
		}
	}
	return nil
}

func (r *saleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Sale, error) {
	sale := &models.Sale{}
	query := `
		SELECT id, tenant_id, client_id, total, payment_method, status, notes, created_at, updated_at
		FROM sales
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&sale.ID, &sale.TenantID, &sale.ClientID, &sale.Total, &sale.PaymentMethod, &sale.Status, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.GetItems(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *saleRepo) GetItems(ctx context.Context, tenantID, saleID uuid.UUID) ([]*models.SaleItem, error) {
	query := `
		SELECT id, tenant_id, sale_id, service_id, provider_id, value, created_at
		FROM sale_items
		WHERE tenant_id = $1 AND sale_id = $2
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SaleItem
	for rows.Next() {
		item := &models.SaleItem{}
		if err := rows.Scan(&item.ID, &item.TenantID, &item.SaleID, &item.ServiceID, &item.ProviderID, &item.Value, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *saleRepo) GetItemByID(ctx context.Context, tenantID, itemID uuid.UUID) (*models.SaleItem, error) {
	item := &models.SaleItem{}
	query := `
		SELECT id, tenant_id, sale_id, service_id, provider_id, value, created_at
		FROM sale_items
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, itemID).Scan(&item.ID, &item.TenantID, &item.SaleID, &item.ServiceID, &item.ProviderID, &item.Value, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *saleRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Sale, error) {
	query := `
		SELECT id, tenant_id, client_id, total, payment_method, status, notes, created_at, updated_at
		FROM sales
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		if err := rows.Scan(&sale.ID, &sale.TenantID, &sale.ClientID, &sale.Total, &sale.PaymentMethod, &sale.Status, &sale.Notes, &sale.CreatedAt, &sale.UpdatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// UpdateStatusCAS flips sale status only from the expected value; completed
// is the only state anything may leave, so a miss means a concurrent cascade
// already settled the sale.
func (r *saleRepo) UpdateStatusCAS(ctx context.Context, tenantID, id uuid.UUID, expected, next string) (bool, error) {
	query := `
		UPDATE sales
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, next, tenantID, id, expected)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
