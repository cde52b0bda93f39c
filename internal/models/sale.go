package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale status values. A completed sale only ever moves to cancelled or
// reversed, both terminal and mutually exclusive.
const (
	SaleStatusCompleted = "concluida"
	SaleStatusCancelled = "cancelada"
	SaleStatusReversed  = "estornada"
)

type Sale struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	TenantID      uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	ClientID      uuid.UUID   `json:"client_id" db:"client_id"`
	Total         float64     `json:"total" db:"total"`
	PaymentMethod string      `json:"payment_method" db:"payment_method"`
	Status        string      `json:"status" db:"status"`
	Notes         *string     `json:"notes" db:"notes"`
	Items         []*SaleItem `json:"items,omitempty" db:"-"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// SaleItemsTotal sums item values; the stored total must always equal it.
func SaleItemsTotal(items []*SaleItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	return total
}
