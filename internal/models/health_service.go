package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthService is a catalog entry for a sellable service. Read-only here;
// pricing on sale items and quotes is captured at creation time, not joined.
type HealthService struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	BasePrice   float64   `json:"base_price" db:"base_price"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
