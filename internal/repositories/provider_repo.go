package repositories

import (
	"context"
	"errors"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProviderRepository is read-only reference access to the provider registry.
type ProviderRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Provider, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Provider, error)
}

type providerRepo struct {
	db Database
}

func NewProviderRepo(db Database) ProviderRepository {
	return &providerRepo{db: db}
}

func (r *providerRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Provider, error) {
	provider := &models.Provider{}
	query := `
		SELECT id, tenant_id, name, specialty, active, created_at
		FROM providers
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&provider.ID, &provider.TenantID, &provider.Name, &provider.Specialty, &provider.Active, &provider.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return provider, nil
}

func (r *providerRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Provider, error) {
	query := `
		SELECT id, tenant_id, name, specialty, active, created_at
		FROM providers
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []*models.Provider
	for rows.Next() {
		provider := &models.Provider{}
		if err := rows.Scan(&provider.ID, &provider.TenantID, &provider.Name, &provider.Specialty, &provider.Active, &provider.CreatedAt); err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, rows.Err()
}
