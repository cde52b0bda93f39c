package repositories

import (
	"context"
	"errors"

	"saudemart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ClientRepository is read-only: client records are owned by the intake
// subsystem and the engine only resolves them by id.
type ClientRepository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error)
}

type clientRepo struct {
	db Database
}

func NewClientRepo(db Database) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Client, error) {
	client := &models.Client{}
	query := `
		SELECT id, tenant_id, name, email, phone, created_at
		FROM clients
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&client.ID, &client.TenantID, &client.Name, &client.Email, &client.Phone, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Client, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, created_at
		FROM clients
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(&client.ID, &client.TenantID, &client.Name, &client.Email, &client.Phone, &client.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}
