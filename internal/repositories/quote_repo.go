package repositories

import (
	"context"
	"errors"
	"time"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Quote, error)
	ListByClient(ctx context.Context, tenantID, clientID uuid.UUID, limit, offset int) ([]*models.Quote, error)
	ListExpiredPending(ctx context.Context, now time.Time) ([]*models.Quote, error)
	UpdateStatusIfPending(ctx context.Context, tenantID, id uuid.UUID, next string) (bool, error)
}

type quoteRepo struct {
	db Database
}

func NewQuoteRepo(db Database) QuoteRepository {
	return &quoteRepo{db: db}
}

const quoteColumns = `id, tenant_id, client_id, provider_id, service_id, cost_value, sale_value, discount_pct, final_value, valid_until, status, notes, sale_id, created_at, updated_at`

func (r *quoteRepo) Create(ctx context.Context, quote *models.Quote) error {
	query := `
		INSERT INTO quotes (id, tenant_id, client_id, provider_id, service_id, cost_value, sale_value, discount_pct, final_value, valid_until, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, quote.ID, quote.TenantID, quote.ClientID, quote.ProviderID, quote.ServiceID, quote.CostValue, quote.SaleValue, quote.DiscountPct, quote.FinalValue, quote.ValidUntil, quote.Status, quote.Notes)
	return err
}

func (r *quoteRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Quote, error) {
	quote := &models.Quote{}
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&quote.ID, &quote.TenantID, &quote.ClientID, &quote.ProviderID, &quote.ServiceID, &quote.CostValue, &quote.SaleValue, &quote.DiscountPct, &quote.FinalValue, &quote.ValidUntil, &quote.Status, &quote.Notes, &quote.SaleID, &quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return quote, nil
}

func (r *quoteRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuotes(rows)
}

func (r *quoteRepo) ListByClient(ctx context.Context, tenantID, clientID uuid.UUID, limit, offset int) ([]*models.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE tenant_id = $1 AND client_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, tenantID, clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuotes(rows)
}

// ListExpiredPending scans across tenants; the sweep runs under system
// authority and uses each row's own tenant id for the follow-up CAS.
func (r *quoteRepo) ListExpiredPending(ctx context.Context, now time.Time) ([]*models.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE status = $1 AND valid_until < $2
	`
	rows, err := r.db.Query(ctx, query, models.QuoteStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuotes(rows)
}

// UpdateStatusIfPending is the quote CAS: the row moves only while still
// pending, so cancel/expire can never clobber an approved quote.
func (r *quoteRepo) UpdateStatusIfPending(ctx context.Context, tenantID, id uuid.UUID, next string) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, next, tenantID, id, models.QuoteStatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func collectQuotes(rows pgx.Rows) ([]*models.Quote, error) {
	var quotes []*models.Quote
	for rows.Next() {
		quote := &models.Quote{}
		if err := rows.Scan(&quote.ID, &quote.TenantID, &quote.ClientID, &quote.ProviderID, &quote.ServiceID, &quote.CostValue, &quote.SaleValue, &quote.DiscountPct, &quote.FinalValue, &quote.ValidUntil, &quote.Status, &quote.Notes, &quote.SaleID, &quote.CreatedAt, &quote.UpdatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}
