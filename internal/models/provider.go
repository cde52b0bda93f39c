package models

import (
	"time"

	"github.com/google/uuid"
)

// Provider is read-only reference data from the provider registry.
type Provider struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	Specialty *string   `json:"specialty" db:"specialty"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
