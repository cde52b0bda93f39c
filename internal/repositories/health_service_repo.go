package repositories

import (
	"context"
	"errors"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HealthServiceRepository is read-only reference access to the service catalog.
type HealthServiceRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.HealthService, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.HealthService, error)
}

type healthServiceRepo struct {
	db Database
}

func NewHealthServiceRepo(db Database) HealthServiceRepository {
	return &healthServiceRepo{db: db}
}

func (r *healthServiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.HealthService, error) {
	svc := &models.HealthService{}
	query := `
		SELECT id, tenant_id, name, description, base_price, active, created_at
		FROM health_services
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&svc.ID, &svc.TenantID, &svc.Name, &svc.Description, &svc.BasePrice, &svc.Active, &svc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return svc, nil
}

func (r *healthServiceRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.HealthService, error) {
	query := `
		SELECT id, tenant_id, name, description, base_price, active, created_at
		FROM health_services
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.HealthService
	for rows.Next() {
		svc := &models.HealthService{}
		if err := rows.Scan(&svc.ID, &svc.TenantID, &svc.Name, &svc.Description, &svc.BasePrice, &svc.Active, &svc.CreatedAt); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}
