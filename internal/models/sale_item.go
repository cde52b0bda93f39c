package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleItem is one purchased service within a sale. Immutable once created
// and owned exclusively by its sale.
type SaleItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	SaleID     uuid.UUID `json:"sale_id" db:"sale_id"`
	ServiceID  uuid.UUID `json:"service_id" db:"service_id"`
	ProviderID uuid.UUID `json:"provider_id" db:"provider_id"`
	Value      float64   `json:"value" db:"value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
